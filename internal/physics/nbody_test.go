package physics_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/x509cert/gravsim/internal/dynamo"
	"github.com/x509cert/gravsim/internal/physics"
)

func body(x, y, mass float32) dynamo.Body {
	return dynamo.Body{Position: dynamo.Vec2{X: x, Y: y}, Mass: mass}
}

var _ = Describe("ForceField", func() {
	var field *physics.ForceField

	BeforeEach(func() {
		field = physics.NewForceField()
	})

	It("pulls two bodies together with G*m1*m2/d^2 along their axis", func() {
		bodies := []dynamo.Body{body(100, 100, 10), body(110, 100, 10)}

		forces := field.Compute(bodies, 5000)

		Expect(forces).To(HaveLen(2))
		Expect(forces[0].X).To(BeNumerically("~", 5000, 1e-2))
		Expect(forces[0].Y).To(BeNumerically("~", 0, 1e-6))
		Expect(forces[1].X).To(BeNumerically("~", -5000, 1e-2))
	})

	It("applies equal and opposite forces to every pair", func() {
		rng := rand.New(rand.NewSource(7))
		for trial := 0; trial < 50; trial++ {
			a := body(rng.Float32()*800, rng.Float32()*600, 8+rng.Float32()*67)
			b := body(rng.Float32()*800, rng.Float32()*600, 8+rng.Float32()*67)

			forces := field.Compute([]dynamo.Body{a, b}, 5000)

			Expect(forces[1]).To(Equal(forces[0].Neg()))
		}
	})

	It("skips pairs within the minimum distance", func() {
		bodies := []dynamo.Body{
			body(50, 50, 20),
			body(50.5, 50.5, 20), // dsq = 0.5
			body(51, 50, 20),     // dsq = 1.0 to the first body
		}

		forces := field.Compute(bodies, 5000)

		// every pair is at or inside the guard, including (0, 2) at exactly 1.0
		for _, f := range forces {
			Expect(f).To(Equal(dynamo.Vec2{}))
		}
	})

	It("ignores coincident bodies while still feeling the rest", func() {
		bodies := []dynamo.Body{body(100, 100, 10), body(100, 100, 10), body(200, 100, 10)}

		forces := field.Compute(bodies, 1000)
		single := physics.NewForceField().Compute([]dynamo.Body{body(100, 100, 10), body(200, 100, 10)}, 1000)

		Expect(forces[0]).To(Equal(single[0]))
		Expect(forces[1]).To(Equal(single[0]))
	})

	It("keeps the net internal force at zero", func() {
		rng := rand.New(rand.NewSource(42))
		bodies, err := physics.Spawn(rng, physics.DefaultSpawnConfig(), 800, 600)
		Expect(err).NotTo(HaveOccurred())

		forces := field.Compute(bodies, 5000)

		var sx, sy float64
		var scale float64
		for _, f := range forces {
			sx += float64(f.X)
			sy += float64(f.Y)
			scale += float64(f.Len())
		}
		Expect(sx / scale).To(BeNumerically("~", 0, 1e-4))
		Expect(sy / scale).To(BeNumerically("~", 0, 1e-4))
	})

	It("does not carry forces over from the previous call", func() {
		bodies := []dynamo.Body{body(100, 100, 10), body(110, 100, 10)}
		field.Compute(bodies, 5000)

		forces := field.Compute(bodies, 0)

		Expect(forces[0]).To(Equal(dynamo.Vec2{}))
		Expect(forces[1]).To(Equal(dynamo.Vec2{}))
	})

	It("agrees with PairForce", func() {
		a, b := body(10, 20, 30), body(70, -5, 12)

		f, ok := physics.PairForce(&a, &b, 5000)
		forces := field.Compute([]dynamo.Body{a, b}, 5000)

		Expect(ok).To(BeTrue())
		Expect(forces[0]).To(Equal(f))
	})
})

var _ = Describe("Bounds", func() {
	bounds := physics.Bounds{Width: 800, Height: 600}

	It("reflects a body that crossed the left edge", func() {
		b := body(0, 50, 20)
		b.Position.X = b.Radius() - 5
		b.Velocity = dynamo.Vec2{X: -10}

		hits := bounds.Resolve(&b)

		Expect(hits).To(Equal(1))
		Expect(b.Position.X).To(Equal(b.Radius()))
		Expect(b.Velocity.X).To(Equal(float32(10)))
	})

	It("contains every body after resolution", func() {
		rng := rand.New(rand.NewSource(3))
		bodies := make([]dynamo.Body, 200)
		for i := range bodies {
			bodies[i] = body(rng.Float32()*1200-200, rng.Float32()*1000-200, 8+rng.Float32()*67)
			bodies[i].Velocity = dynamo.Vec2{X: rng.Float32()*100 - 50, Y: rng.Float32()*100 - 50}
		}

		bounds.ResolveAll(bodies)

		for i := range bodies {
			Expect(bounds.Contains(&bodies[i])).To(BeTrue(), "body %d at %v", i, bodies[i].Position)
		}
	})

	It("preserves speed on reflection", func() {
		b := body(795, 595, 20)
		b.Velocity = dynamo.Vec2{X: 3, Y: 4}

		hits := bounds.Resolve(&b)

		Expect(hits).To(Equal(2))
		Expect(b.Velocity).To(Equal(dynamo.Vec2{X: -3, Y: -4}))
		Expect(b.Speed()).To(Equal(float32(5)))
	})
})

var _ = Describe("Spawn", func() {
	It("reproduces the same population for the same seed", func() {
		cfg := physics.DefaultSpawnConfig()

		a, err := physics.Spawn(rand.New(rand.NewSource(11)), cfg, 800, 600)
		Expect(err).NotTo(HaveOccurred())
		b, err := physics.Spawn(rand.New(rand.NewSource(11)), cfg, 800, 600)
		Expect(err).NotTo(HaveOccurred())

		Expect(a).To(Equal(b))
	})

	It("respects the configured ranges", func() {
		bodies, err := physics.Spawn(rand.New(rand.NewSource(5)), physics.DefaultSpawnConfig(), 800, 600)
		Expect(err).NotTo(HaveOccurred())
		Expect(bodies).To(HaveLen(74))

		for _, b := range bodies {
			Expect(b.Mass).To(BeNumerically(">=", 8))
			Expect(b.Mass).To(BeNumerically("<", 75))
			Expect(b.Radius()).To(Equal(b.Mass / 2))
			Expect(b.Position.X).To(BeNumerically(">=", 360))
			Expect(b.Position.X).To(BeNumerically("<=", 440))
			Expect(b.Position.Y).To(BeNumerically(">=", 270))
			Expect(b.Position.Y).To(BeNumerically("<=", 330))
			Expect(b.Velocity.X).To(BeNumerically("<=", 0.1))
			Expect(b.Velocity.X).To(BeNumerically(">=", -0.1))
			for _, c := range []float32{b.Color.R, b.Color.G, b.Color.B, b.Color.A} {
				Expect(c).To(BeNumerically(">=", 0))
				Expect(c).To(BeNumerically("<", 1))
			}
		}
	})

	DescribeTable("rejects invalid configurations",
		func(mutate func(*physics.SpawnConfig)) {
			cfg := physics.DefaultSpawnConfig()
			mutate(&cfg)
			_, err := physics.Spawn(rand.New(rand.NewSource(1)), cfg, 800, 600)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		},
		Entry("no bodies", func(c *physics.SpawnConfig) { c.Count = 0 }),
		Entry("zero mass", func(c *physics.SpawnConfig) { c.MassMin = 0 }),
		Entry("inverted mass range", func(c *physics.SpawnConfig) { c.MassMax = 4 }),
		Entry("spread above one", func(c *physics.SpawnConfig) { c.Spread = 1.5 }),
		Entry("negative speed", func(c *physics.SpawnConfig) { c.MaxSpeed = -1 }),
		Entry("NaN spread", func(c *physics.SpawnConfig) { c.Spread = float32(math.NaN()) }),
		Entry("NaN speed", func(c *physics.SpawnConfig) { c.MaxSpeed = float32(math.NaN()) }),
		Entry("NaN mass bound", func(c *physics.SpawnConfig) { c.MassMax = float32(math.NaN()) }),
	)
})
