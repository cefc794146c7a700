package arena_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestArena(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Arena Suite")
}
