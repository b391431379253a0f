package classifier

import (
	"github.com/jonesrussell/freefood/internal/data"
	"github.com/jonesrussell/freefood/internal/textmatch"
)

func phraseFilter(set func() *textmatch.PhraseSet, reason string) func(*Classifier, *analysis) (string, bool) {
	return func(_ *Classifier, a *analysis) (string, bool) {
		return reason, set().Contains(a.text)
	}
}

func foodGate(_ *Classifier, a *analysis) (string, bool) {
	if a.negated {
		return ReasonFoodNegated, true
	}
	if !a.hasFood() {
		return ReasonNoFood, true
	}
	return "", false
}

func foodActivity(_ *Classifier, a *analysis) (string, bool) {
	if !data.FoodActivity().Contains(a.text) || provisionOverride.MatchString(a.text) {
		return "", false
	}
	return ReasonFoodActivity, true
}

func otherCollege(_ *Classifier, a *analysis) (string, bool) {
	if m, ok := data.OtherColleges().Find(a.text); ok {
		return "Other college mentioned: " + m.Phrase, true
	}
	return "", false
}

func offCampus(_ *Classifier, a *analysis) (string, bool) {
	if a.campus {
		return "", false
	}
	if m, ok := data.OffCampusVenues().FindExcept(a.text, data.FoodCompounds()); ok {
		return "Off-campus venue: " + m.Phrase, true
	}
	return "", false
}

func online(_ *Classifier, a *analysis) (string, bool) {
	return ReasonOnline, !a.campus && data.Online().ContainsExcept(a.text, data.OnlineRegistration())
}

func nightlife(_ *Classifier, a *analysis) (string, bool) {
	if m, ok := data.Nightlife().Find(a.text); ok {
		return "Nightlife event: " + m.Phrase, true
	}
	return "", false
}
