package situation

import (
	"errors"
	"slices"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/simpop/period"
	"github.com/katalvlaran/simpop/simulation"
)

// FinalizeVariablesInit stamps the recorded population shape (count, ids,
// memberships, roles) onto pop and commits this kind's buffered arrays.
//
// Buffered periods are committed in ascending period-size order — months
// before years — so that the holder's decomposition treats finer-grained
// facts as most specific and never lets a coarse value overwrite them.
// Variables buffered for other kinds are skipped, not errors. A period
// mismatch raised by the holder is mapped back to the document path
// recorded at ingestion time, falling back to the entity level.
func (b *Builder) FinalizeVariablesInit(pop *simulation.Population) error {
	plural := pop.Kind.Plural
	if _, ok := b.entityCounts[plural]; ok {
		pop.Count = b.getCount(plural)
		pop.IDs = b.getIDs(plural)
	}
	if _, ok := b.memberships[plural]; ok {
		pop.MembersEntityID = b.getMemberships(plural)
		pop.MembersRole = b.getRoles(plural)
	}

	bufferedNames := make([]string, 0, len(b.inputBuffer))
	for name := range b.inputBuffer {
		bufferedNames = append(bufferedNames, name)
	}
	slices.Sort(bufferedNames)
	for _, name := range bufferedNames {
		holder, err := pop.Holder(name)
		if err != nil {
			// Another kind's variable; not applicable here.
			continue
		}
		buf := b.inputBuffer[name]
		periods := make([]period.Period, 0, len(buf))
		for key := range buf {
			p, err := period.Parse(key)
			if err != nil {
				continue // buffer keys are canonical; unreachable in practice
			}
			periods = append(periods, p)
		}
		slices.SortFunc(periods, func(a, b period.Period) int {
			if c := period.Compare(a, b); c != 0 {
				return c
			}
			return strings.Compare(a.Key(), b.Key())
		})
		for _, p := range periods {
			arr := buf[p.Key()]
			// Axis expansion replicates the base population per repetition
			// block; arrays buffered before it repeat per block too.
			if len(arr) > 0 && len(arr) < pop.Count && pop.Count%len(arr) == 0 {
				tiled := make([]cty.Value, 0, pop.Count)
				for len(tiled) < pop.Count {
					tiled = append(tiled, arr...)
				}
				arr = tiled
			}
			if err := holder.SetInput(p, arr); err != nil {
				return b.locatePeriodMismatch(pop, err)
			}
		}
	}
	return nil
}

// locatePeriodMismatch turns a commit-time period mismatch into a
// structured error at the path that originally fed the offending
// (variable, period). Values written without a document path — axis
// sweeps — fall back to an entity-level error.
func (b *Builder) locatePeriodMismatch(pop *simulation.Population, err error) error {
	var mismatch *simulation.PeriodMismatchError
	if !errors.As(err, &mismatch) {
		return err
	}
	if path, ok := b.origins[mismatch.Variable][mismatch.Period.Key()]; ok {
		return newError(path, "%s", mismatch.Message)
	}
	return newError([]string{pop.Kind.Plural}, "%s", mismatch.Message)
}
