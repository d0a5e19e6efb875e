package sat

import (
	"errors"
	"os/exec"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/samber/lo"
)

// fakeLookPath resolves only the given executables
func fakeLookPath(available ...string) func(string) (string, error) {
	return func(file string) (string, error) {
		switch {
		case !lo.Contains(available, file):
			return "", exec.ErrNotFound
		case strings.Contains(file, "/"):
			return file, nil
		}
		return "/opt/solvers/" + file, nil
	}
}

func TestRegistrySolvers(t *testing.T) {
	g := NewWithT(t)

	registry := NewRegistry(DefaultConfig())
	registry.lookPath = fakeLookPath("kissat", "cryptominisat5")

	solvers := registry.Solvers()

	g.Expect(lo.Map(solvers, func(info SolverInfo, _ int) int { return info.ID })).To(Equal([]int{1, 2, 3, 4, 5, 6, 7, 8}))
	g.Expect(lo.Map(solvers, func(info SolverInfo, _ int) string { return info.Key })).To(Equal(
		[]string{"kissat", "minisat", "cadical", "cryptominisat", "glucose", "gini", "slime", "ortoolsat"},
	))
	g.Expect(lo.FilterMap(solvers, func(info SolverInfo, _ int) (string, bool) { return info.Key, info.Ready })).To(Equal(
		[]string{"kissat", "cryptominisat", "gini"},
	))
	g.Expect(solvers[0].Executable).To(Equal("/opt/solvers/kissat"))
	g.Expect(solvers[0].InputMode).To(Equal("stdin"))
	g.Expect(solvers[1].InputMode).To(Equal("result file"))
	g.Expect(solvers[5].InputMode).To(Equal("in process"))
}

func TestRegistryResolve(t *testing.T) {
	t.Run("By key and by id", func(t *testing.T) {
		g := NewWithT(t)
		registry := NewRegistry(DefaultConfig())
		registry.lookPath = fakeLookPath("cadical")

		byKey, info, err := registry.Resolve("CaDiCaL")
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(byKey.Name()).To(Equal("cadical"))
		g.Expect(info.ID).To(Equal(3))

		byID, _, err := registry.Resolve("3")
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(byID.Name()).To(Equal("cadical"))
	})

	t.Run("Configured path and arguments", func(t *testing.T) {
		g := NewWithT(t)
		config := DefaultConfig()
		config.Solvers["kissat"] = SolverConfig{Path: "/custom/kissat", Args: []string{"--sat"}}
		registry := NewRegistry(config)
		registry.lookPath = fakeLookPath("/custom/kissat")

		solver, info, err := registry.Resolve("kissat")

		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(info.Executable).To(Equal("/custom/kissat"))
		g.Expect(solver).To(BeAssignableToTypeOf(&commandSolver{}))
		g.Expect(solver.(*commandSolver).args).To(Equal([]string{"--sat"}))
	})

	t.Run("Default solver", func(t *testing.T) {
		g := NewWithT(t)
		config := DefaultConfig()
		config.DefaultSolver = "minisat"
		registry := NewRegistry(config)
		registry.lookPath = fakeLookPath("minisat", "kissat")

		solver, _, err := registry.Resolve("")

		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(solver.Name()).To(Equal("minisat"))
	})

	t.Run("First ready solver when the default is missing", func(t *testing.T) {
		g := NewWithT(t)
		registry := NewRegistry(DefaultConfig())
		registry.lookPath = fakeLookPath("glucose")

		solver, info, err := registry.Resolve("")

		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(solver.Name()).To(Equal("glucose"))
		g.Expect(info.ID).To(Equal(5))
	})

	t.Run("In-process fallback", func(t *testing.T) {
		g := NewWithT(t)
		registry := NewRegistry(DefaultConfig())
		registry.lookPath = fakeLookPath()

		solver, _, err := registry.Resolve("")

		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(solver.Name()).To(Equal("gini"))
	})

	t.Run("Unknown and unavailable solvers", func(t *testing.T) {
		g := NewWithT(t)
		registry := NewRegistry(DefaultConfig())
		registry.lookPath = fakeLookPath()

		_, _, unknown := registry.Resolve("zchaff")
		_, info, unavailable := registry.Resolve("kissat")

		var solverErr *SolverError
		g.Expect(errors.As(unknown, &solverErr)).To(BeTrue())
		g.Expect(solverErr.Message).To(Equal("unknown solver"))
		g.Expect(errors.As(unavailable, &solverErr)).To(BeTrue())
		g.Expect(solverErr.Solver).To(Equal("kissat"))
		g.Expect(info.Ready).To(BeFalse())
	})
}
