package publishers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigEnabledFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: HTTP
    operations: [" Create_List ", delete_list]
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	enabled := cfg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", enabled)
	}
	sink := enabled[0]
	if diff := cmp.Diff([]string{"create_list", "delete_list"}, sink.Operations); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
	if !sink.Accepts("create_list") || sink.Accepts("get_lists") {
		t.Fatalf("operation filter not applied")
	}
	if sink.HTTP.Method != "POST" || sink.HTTP.TimeoutSeconds != httpDefaultTimeout {
		t.Fatalf("http defaults not applied: %+v", sink.HTTP)
	}
}

func TestParseConfigAWSAndPubSub(t *testing.T) {
	raw := `{"publishers":[
  {"id":"sns1","type":"sns","sns":{"topic_arn":" arn:aws:sns:eu-west-1:1:changes ","region":"eu-west-1","access_key_id":"AKIA","secret_access_key":"secret"}},
  {"id":"gcp1","type":"gcp_pubsub","gcp_pubsub":{"project_id":"proj","topic":"changes","order_by_list":true}}
]}`
	cfg, err := ParseConfig([]byte(raw), ".json")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	sns, ok := cfg.Sink("sns1")
	if !ok || sns.SNS.TopicARN != "arn:aws:sns:eu-west-1:1:changes" {
		t.Fatalf("unexpected sns config %+v", sns.SNS)
	}
	if !sns.SNS.AWSAuth.static() {
		t.Fatalf("inline static credentials not parsed: %+v", sns.SNS.AWSAuth)
	}
	gcp, ok := cfg.Sink("gcp1")
	if !ok || !gcp.PubSub.OrderByList {
		t.Fatalf("unexpected pubsub config %+v", gcp.PubSub)
	}
	if !gcp.Accepts("anything") {
		t.Fatalf("sinks without operations accept everything")
	}
}

func TestParseConfigRejectsBadEntries(t *testing.T) {
	cases := map[string]string{
		"empty":     "publishers: []",
		"no id":     "publishers: [{type: http, http: {url: x}}]",
		"duplicate": "publishers: [{id: a, type: http, http: {url: x}}, {id: a, type: http, http: {url: y}}]",
		"sns":       "publishers: [{id: s, type: sns, sns: {region: eu-west-1}}]",
		"sqs":       "publishers: [{id: q, type: sqs, sqs: {uri: https://q}}]",
		"pubsub":    "publishers: [{id: g, type: gcp_pubsub, gcp_pubsub: {project_id: p}}]",
		"unknown":   "publishers: [{id: k, type: kafka}]",
	}
	for name, raw := range cases {
		if _, err := ParseConfig([]byte(raw), ".yaml"); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := ParseConfig([]byte("{}"), ".toml"); err == nil {
		t.Fatalf("expected error for unknown extension")
	}
}
