package sources_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dictcheck/pkg/errors"
	"github.com/agentstation/dictcheck/pkg/sources"
)

func TestParseDescriptor(t *testing.T) {
	tests := []struct {
		input string
		want  sources.Descriptor
	}{
		{"json:./data/dictionary.json", sources.Descriptor{Kind: sources.KindJSON, Location: "./data/dictionary.json"}},
		{"CSV:/srv/kg/dict/symptoms.csv", sources.Descriptor{Kind: sources.KindCSV, Location: "/srv/kg/dict/symptoms.csv"}},
		{"yml:terms", sources.Descriptor{Kind: sources.KindYAML, Location: "terms"}},
		{"neo4j:default", sources.Descriptor{Kind: sources.KindNeo4j, Location: "default"}},
		{"http://localhost:8000/api/dictionary", sources.Descriptor{Kind: sources.KindHTTP, Location: "http://localhost:8000/api/dictionary"}},
		{"HTTPS://kg.example/dict", sources.Descriptor{Kind: sources.KindHTTP, Location: "HTTPS://kg.example/dict"}},
		{"  ./dictionary.json ", sources.Descriptor{Kind: sources.KindJSON, Location: "./dictionary.json"}},
		{"terms.YAML", sources.Descriptor{Kind: sources.KindYAML, Location: "terms.YAML"}},
		{`C:\dict\terms.csv`, sources.Descriptor{Kind: sources.KindCSV, Location: `C:\dict\terms.csv`}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := sources.ParseDescriptor(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDescriptorErrors(t *testing.T) {
	for _, input := range []string{"", "json:", "dictionary.txt", "neo4j"} {
		t.Run(input, func(t *testing.T) {
			_, err := sources.ParseDescriptor(input)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestDescriptorString(t *testing.T) {
	assert.Equal(t, "neo4j:default", sources.Descriptor{Kind: sources.KindNeo4j, Location: "default"}.String())
	assert.Equal(t, "http://x/d", sources.Descriptor{Kind: sources.KindHTTP, Location: "http://x/d"}.String())
}

func TestWithPageSizeClamped(t *testing.T) {
	o := sources.Apply(sources.WithPageSize(1_000_000))
	assert.Equal(t, 1000, o.PageSize)
	o = sources.Apply(sources.WithPageSize(-1))
	assert.Equal(t, 100, o.PageSize)
}
