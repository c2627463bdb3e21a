package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anndream/gitgud/protocol"
)

func TestRefFullName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "HEAD", protocol.Ref{Prefix: "", Name: "HEAD"}.FullName())
	require.Equal(t, "refs/heads/main", protocol.Ref{Prefix: protocol.HeadsPrefix, Name: "main"}.FullName())
	require.Equal(t, "refs/tags/v1", protocol.Ref{Prefix: protocol.TagsPrefix, Name: "v1"}.FullName())
}

func TestParseFullRefName(t *testing.T) {
	t.Parallel()

	testcases := map[string]struct {
		in         string
		wantPrefix string
		wantName   string
		wantErr    bool
	}{
		"HEAD":                {in: "HEAD", wantPrefix: "", wantName: "HEAD"},
		"branch":              {in: "refs/heads/main", wantPrefix: protocol.HeadsPrefix, wantName: "main"},
		"nested branch":       {in: "refs/heads/feature/foo", wantPrefix: protocol.HeadsPrefix, wantName: "feature/foo"},
		"tag":                 {in: "refs/tags/v1.0.0", wantPrefix: protocol.TagsPrefix, wantName: "v1.0.0"},
		"missing prefix":      {in: "main", wantErr: true},
		"empty short name":    {in: "refs/heads/", wantErr: true},
		"double dot":          {in: "refs/heads/foo..bar", wantErr: true},
		"trailing dot":        {in: "refs/heads/foo.", wantErr: true},
		"dot-lock suffix":     {in: "refs/heads/foo.lock", wantErr: true},
		"leading dot segment": {in: "refs/heads/.foo", wantErr: true},
		"at-brace":            {in: "refs/heads/foo@{bar}", wantErr: true},
		"reserved char":       {in: "refs/heads/foo~bar", wantErr: true},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			prefix, short, err := protocol.ParseFullRefName(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, protocol.ErrInvalidRefName)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantPrefix, prefix)
			require.Equal(t, tc.wantName, short)
		})
	}
}
