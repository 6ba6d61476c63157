package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"internhub/internal/config"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey(PrefixDocuments, "student-1", "Offer Letter.PDF")

	assert.True(t, strings.HasPrefix(key, "documents/student-1/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.Len(t, strings.TrimSuffix(strings.TrimPrefix(key, "documents/student-1/"), ".pdf"), 36)

	other := ObjectKey(PrefixDocuments, "student-1", "Offer Letter.PDF")
	assert.NotEqual(t, key, other)
}

func TestObjectKey_NoExtension(t *testing.T) {
	key := ObjectKey(PrefixResumes, "intern-1", "resume")

	assert.True(t, strings.HasPrefix(key, "resumes/intern-1/"))
	assert.NotContains(t, strings.TrimPrefix(key, "resumes/intern-1/"), ".")
}

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MinIOConfig
		wantErr error
	}{
		{name: "missing endpoint", cfg: config.MinIOConfig{}, wantErr: errMissingEndpoint},
		{name: "missing credentials", cfg: config.MinIOConfig{Endpoint: "localhost:9000"}, wantErr: errMissingCredentials},
		{name: "missing bucket", cfg: config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, wantErr: errMissingBucket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(context.Background(), tt.cfg)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
