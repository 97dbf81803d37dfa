package cmd

import (
	"bitc/depm"
	"bitc/report"
	"strconv"

	"github.com/pterm/pterm"
)

// execBuiltinsCommand prints the built-in declarations along with the slots
// they are assigned in every program.
func execBuiltinsCommand() {
	slots := depm.NewSlotAllocator()
	universe := depm.NewUniverse(slots)

	data := pterm.TableData{{"Name", "Kind", "Type", "Slot"}}
	for _, builtin := range depm.Builtins {
		data = append(data, []string{
			builtin.Name,
			builtin.Kind.String(),
			builtinRepr(builtin),
			strconv.Itoa(builtinSlot(universe, builtin)),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		report.ReportFatal("unable to display built-ins: %s", err.Error())
	}

	report.ReportInfo("Slots", "%d value slots, %d type slots", slots.ValueCount(), slots.TypeCount())
}

// builtinRepr returns the displayed type of a built-in.
func builtinRepr(builtin *depm.Builtin) string {
	if builtin.Kind == depm.BuiltinExtension {
		return builtin.Receiver.Repr() + "." + builtin.Type.Repr()
	}

	return builtin.Type.Repr()
}

// builtinSlot returns the slot the universe assigned to a built-in.
func builtinSlot(universe *depm.Environment, builtin *depm.Builtin) int {
	switch builtin.Kind {
	case depm.BuiltinValue:
		if binding, err := universe.LookupValue(builtin.Name); err == nil {
			return binding.Symbol.ID
		}
	case depm.BuiltinExtension:
		for _, ext := range universe.LookupExtensions(builtin.Name) {
			if ext.Receiver == builtin.Receiver {
				return ext.Symbol.ID
			}
		}
	case depm.BuiltinType:
		if binding, err := universe.LookupType(builtin.Name); err == nil {
			return binding.Symbol.ID
		}
	}

	report.ReportICE("built-in `%s` missing from the universe", builtin.Name)
	return -1
}
