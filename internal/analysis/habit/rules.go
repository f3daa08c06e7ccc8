package habit

// Classification uses ordered rule tables. The ranges overlap, so the first
// matching rule wins and the order of each table is part of its meaning.

type frequencyRule struct {
	frequency Frequency
	matches   func(days []int) bool
}

var frequencyRules = []frequencyRule{
	{FrequencyDaily, func(days []int) bool { return len(days) >= 5 }},
	{FrequencyWeekdays, allDaysIn(1, 2, 3, 4, 5)},
	{FrequencyWeekends, allDaysIn(0, 6)},
}

// ClassifyFrequency maps a set of distinct weekdays (0=Sunday) to a cadence
func ClassifyFrequency(days []int) Frequency {
	for _, rule := range frequencyRules {
		if rule.matches(days) {
			return rule.frequency
		}
	}
	return FrequencyCustom
}

func allDaysIn(allowed ...int) func([]int) bool {
	var set [7]bool
	for _, d := range allowed {
		set[d] = true
	}
	return func(days []int) bool {
		for _, d := range days {
			if d < 0 || d > 6 || !set[d] {
				return false
			}
		}
		return true
	}
}

type habitTypeRule struct {
	habitType HabitType
	matches   func(meanHour float64, visits int) bool
}

var habitTypeRules = []habitTypeRule{
	{HabitTypeCommute, hourIn(6, 9)},
	{HabitTypeCommute, hourIn(17, 19)},
	{HabitTypeRoutine, func(h float64, visits int) bool { return h >= 10 && h <= 16 && visits > 10 }},
	{HabitTypeOutdoorActivity, hourIn(7, 11)},
}

// ClassifyHabitType labels a pattern from its mean hour and visit count
func ClassifyHabitType(meanHour float64, visits int) HabitType {
	for _, rule := range habitTypeRules {
		if rule.matches(meanHour, visits) {
			return rule.habitType
		}
	}
	return HabitTypeRoutine
}

func hourIn(lo, hi float64) func(float64, int) bool {
	return func(h float64, _ int) bool { return h >= lo && h <= hi }
}
