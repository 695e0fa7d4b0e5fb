package config

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestValidateRejectsEmptyRetrySchedule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Retry.Schedule = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty retry schedule")
	}
}

func TestValidateRejectsZeroWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Recommend.DefaultWeights = WeightsConfig{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for all-zero weights")
	}
}

func TestValidateRejectsOutOfRangeMMR(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Recommend.MMRDiversityDefault = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for mmr_diversity_default out of [0,1]")
	}
}

func TestBrokerURL(t *testing.T) {
	b := BrokerConfig{Host: "mq", Port: 5672, User: "u", Password: "p", VHost: "/"}
	want := "amqp://u:p@mq:5672//"
	if got := b.URL(); got != want {
		t.Fatalf("URL() = %q, want %q", got, want)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	cases := map[string]string{
		"RECO_BROKER_HOST":   "broker.host",
		"RECO_GRAPH_PATH":    "graph.path",
		"RECO_SERVER_PORT":   "server.port",
	}
	for in, want := range cases {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
