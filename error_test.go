package docsync_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/docsync"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docsync.Errorf(docsync.ENOTFOUND, "docset %q not found", "test")

	assert.Equal(t, docsync.ENOTFOUND, docsync.ErrorCode(err))
	assert.Equal(t, "docset \"test\" not found", docsync.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsync.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsync.ErrorMessage(nil))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading source: %w", docsync.Errorf(docsync.EEXTRACT, "unsupported archive format"))

	assert.Equal(t, docsync.EEXTRACT, docsync.ErrorCode(err))
	assert.Equal(t, "unsupported archive format", docsync.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, docsync.EINTERNAL, docsync.ErrorCode(errors.New("boom")))
}

func TestCloneError(t *testing.T) {
	t.Parallel()

	cause := errors.New("repository not found")
	err := fmt.Errorf("load: %w", &docsync.CloneError{
		URL:     "https://github.com/acme/docs.git",
		Branch:  "main",
		Command: "git clone --depth 1 --branch main https://github.com/acme/docs.git",
		Err:     cause,
	})

	assert.Equal(t, docsync.EFETCH, docsync.ErrorCode(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, docsync.ErrorMessage(err), "failed to clone https://github.com/acme/docs.git (branch main)")

	var ce *docsync.CloneError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, "main", ce.Branch)
}
