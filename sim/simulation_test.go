package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Simulation", func() {
	var (
		mockCtrl *gomock.Controller
		sim      *Simulation
		comp     *MockComponent
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		sim = NewSimulation()

		comp = NewMockComponent(mockCtrl)
		comp.EXPECT().Name().Return("comp").AnyTimes()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should register a component", func() {
		sim.RegisterComponent(comp)

		found, ok := sim.GetComponentByName("comp")
		Expect(ok).To(BeTrue())
		Expect(found).To(BeIdenticalTo(comp))
		Expect(sim.Components()).To(HaveLen(1))
	})

	It("should report unknown components", func() {
		_, ok := sim.GetComponentByName("nothing")
		Expect(ok).To(BeFalse())
	})

	It("should panic when registering a name twice", func() {
		sim.RegisterComponent(comp)

		Expect(func() { sim.RegisterComponent(comp) }).To(Panic())
	})

	It("should list names in order", func() {
		other := NewMockComponent(mockCtrl)
		other.EXPECT().Name().Return("a").AnyTimes()

		sim.RegisterComponent(comp)
		sim.RegisterComponent(other)

		Expect(sim.ComponentNames()).To(Equal([]string{"a", "comp"}))
	})
})
