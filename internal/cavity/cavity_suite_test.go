package cavity

import (
	"testing"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCavity(t *testing.T) {
	RegisterFailHandler(g.Fail)
	g.RunSpecs(t, "Cavity Suite")
}
