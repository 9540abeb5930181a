package catalog

// Variant selects one of the alternate question sets. All variants share
// question numbers and the category mapping.
type Variant string

const (
	VariantBZF  Variant = "bzf"
	VariantBZFE Variant = "bzf-e"
)

// DefaultVariant is used when settings do not name a variant.
const DefaultVariant = VariantBZF

// Valid reports whether v names a known variant.
func (v Variant) Valid() bool {
	return v == VariantBZF || v == VariantBZFE
}

// Question is a single catalog entry. Choice A is always the correct one
// in the source data; presentation order is shuffled per showing.
type Question struct {
	Number int    `json:"number"`
	Text   string `json:"question"`
	A      string `json:"A"`
	B      string `json:"B"`
	C      string `json:"C"`
	D      string `json:"D"`
}

// CorrectKey is the source key of the canonically correct choice.
const CorrectKey = "A"

// ChoiceKeys lists the source keys in catalog order.
var ChoiceKeys = []string{"A", "B", "C", "D"}

// Choice returns the text stored under key, or "" for an unknown key.
func (q Question) Choice(key string) string {
	switch key {
	case "A":
		return q.A
	case "B":
		return q.B
	case "C":
		return q.C
	case "D":
		return q.D
	}
	return ""
}

// Category groups questions by topic.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// categoriesFile is the on-disk shape of categories.json.
type categoriesFile struct {
	FormatVersion   string            `json:"formatVersion"`
	Categories      []Category        `json:"categories"`
	QuestionMapping map[string]string `json:"questionMapping"`
}
