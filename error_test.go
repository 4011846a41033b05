package newsquote_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/newsquote"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := newsquote.Errorf(newsquote.ENOTFOUND, "article %q not found", "42")

	assert.Equal(t, newsquote.ENOTFOUND, newsquote.ErrorCode(err))
	assert.Equal(t, "article \"42\" not found", newsquote.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, newsquote.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, newsquote.EINTERNAL, newsquote.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, newsquote.ErrorMessage(nil))
}
