package opportunities

// durationDays maps the duration labels offered by the proposal form to day
// counts. The labels are a user-facing contract and must stay verbatim.
var durationDays = map[string]int{
	"1 semana":  7,
	"2 semanas": 14,
	"1 mes":     30,
	"2 meses":   60,
	"3+ meses":  90,
}

// defaultDurationDays is used for any label the table does not know.
const defaultDurationDays = 30

// DurationDays resolves an estimated-duration label to days.
func DurationDays(label string) int {
	if days, ok := durationDays[label]; ok {
		return days
	}
	return defaultDurationDays
}
