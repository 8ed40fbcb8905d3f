package solpay_test

import (
	"testing"

	"github.com/solpay/solpay"
	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	defer func(commit string) { solpay.GitCommit = commit }(solpay.GitCommit)

	solpay.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", solpay.Version())

	solpay.GitCommit = "9f3c2a1"
	assert.Equal(t, "v0.1.0-dev 9f3c2a1", solpay.Version())
}
