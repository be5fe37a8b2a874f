package medical

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func (s *Scorer) templateVars(in Input) map[string]interface{} {
	vars := map[string]interface{}{
		"pushUpTarget": formatNumber(s.tables.PushUps.Target),
		"sitUpTarget":  formatNumber(s.tables.SitUps.Target),
		"runTarget":    formatNumber(s.tables.Run.Target),
	}

	heightM := in.HeightCm / 100
	switch s.fitSide(rawBMI(in)) {
	case -1:
		vars["action"] = "gain"
		vars["kg"] = kgDelta(s.tables.FitLow*heightM*heightM - in.WeightKg)
	case 1:
		vars["action"] = "lose"
		vars["kg"] = kgDelta(in.WeightKg - s.tables.FitHigh*heightM*heightM)
	}

	conditions := in.activeConditions()
	if len(conditions) > 0 {
		names := make([]string, len(conditions))
		for i, c := range conditions {
			names[i] = conditionLabel(c)
		}
		vars["conditions"] = strings.Join(names, ", ")
	}
	return vars
}

// kgDelta is whole kilograms to the fit-band edge, never less than one.
func kgDelta(kg float64) int {
	return int(math.Max(math.Ceil(kg), 1))
}

func conditionLabel(c Condition) string {
	switch c {
	case ConditionFlatFoot:
		return "flat foot"
	case ConditionColourBlindness:
		return "colour blindness"
	case ConditionSurgeryHistory:
		return "past surgery"
	default:
		return string(c)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// render substitutes {{key}} placeholders and drops any left unresolved.
func render(tmpl string, data map[string]interface{}) string {
	result := tmpl
	for k, v := range data {
		placeholder := "{{" + k + "}}"
		value := ""
		if str, ok := v.(string); ok {
			value = str
		} else if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}
	return result
}
