package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseGUID checks guid extraction and every rejection path.
func TestParseGUID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents string
		want     string
		wantErr  error
	}{
		{
			name:     "plain",
			contents: "fileFormatVersion: 2\nguid: 37d6e1e5ec83e454eb86b47f81fe116a\n",
			want:     "37d6e1e5ec83e454eb86b47f81fe116a",
		},
		{
			name:     "byte order mark",
			contents: "\ufefffileFormatVersion: 2\nguid: 80b54747fd9534ef3bf4f5dec0cb319a\n",
			want:     "80b54747fd9534ef3bf4f5dec0cb319a",
		},
		{
			name:     "numeric scalar",
			contents: "guid: 12345678901234567890123456789012\n",
			want:     "12345678901234567890123456789012",
		},
		{
			name:     "first document only",
			contents: "guid: aaaa\n---\nguid: bbbb\n",
			want:     "aaaa",
		},
		{
			name:     "nested guid is not top-level",
			contents: "importer:\n  guid: aaaa\n",
			wantErr:  errMissingGUID,
		},
		{
			name:     "empty document",
			contents: "",
			wantErr:  errMissingGUID,
		},
		{
			name:     "not a mapping",
			contents: "- guid\n",
			wantErr:  errMissingGUID,
		},
		{
			name:     "mapping value",
			contents: "guid:\n  value: aaaa\n",
			wantErr:  errGUIDNotScalar,
		},
		{
			name:     "null value",
			contents: "guid: ~\n",
			wantErr:  errGUIDNotScalar,
		},
		{
			name:     "empty string",
			contents: "guid: ''\n",
			wantErr:  errEmptyGUID,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseGUID([]byte(tt.contents))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

// TestParseGUID_Syntax ensures malformed YAML is rejected.
func TestParseGUID_Syntax(t *testing.T) {
	t.Parallel()

	_, err := ParseGUID([]byte("guid: [unclosed\n"))
	require.Error(t, err)
}
