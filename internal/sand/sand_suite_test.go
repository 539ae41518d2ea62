package sand_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSand(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Sand Suite")
}
