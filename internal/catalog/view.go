package catalog

// View is the question set of a single variant together with the shared
// category data. A View never changes after it is built.
type View struct {
	variant    Variant
	ids        []int
	byID       map[int]Question
	categories []Category
	mapping    map[int]string
}

// NewView builds a View directly from data. Intended for callers that
// already hold questions in memory, such as tests.
func NewView(variant Variant, questions []Question, categories []Category, mapping map[int]string) *View {
	byID := make(map[int]Question, len(questions))
	ids := make([]int, 0, len(questions))
	for _, q := range questions {
		if _, dup := byID[q.Number]; dup {
			continue
		}
		byID[q.Number] = q
		ids = append(ids, q.Number)
	}
	if mapping == nil {
		mapping = make(map[int]string)
	}
	return &View{
		variant:    variant,
		ids:        ids,
		byID:       byID,
		categories: categories,
		mapping:    mapping,
	}
}

// Variant returns the variant this view was built for.
func (v *View) Variant() Variant {
	return v.variant
}

// QuestionIDs returns every question number in catalog order.
func (v *View) QuestionIDs() []int {
	out := make([]int, len(v.ids))
	copy(out, v.ids)
	return out
}

// Question looks up a question by number.
func (v *View) Question(id int) (Question, bool) {
	q, ok := v.byID[id]
	return q, ok
}

// Has reports whether the question number exists in this variant.
func (v *View) Has(id int) bool {
	_, ok := v.byID[id]
	return ok
}

// Categories returns the category list in file order.
func (v *View) Categories() []Category {
	return v.categories
}

// Category looks up a category by id.
func (v *View) Category(id string) (Category, bool) {
	for _, c := range v.categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// HasCategory reports whether id names a known category.
func (v *View) HasCategory(id string) bool {
	_, ok := v.Category(id)
	return ok
}

// CategoryFor returns the category of a question, if it is mapped.
func (v *View) CategoryFor(questionID int) (Category, bool) {
	catID, ok := v.mapping[questionID]
	if !ok {
		return Category{}, false
	}
	return v.Category(catID)
}

// CategoryQuestionIDs returns the question numbers mapped to categoryID,
// in catalog order.
func (v *View) CategoryQuestionIDs(categoryID string) []int {
	var out []int
	for _, id := range v.ids {
		if v.mapping[id] == categoryID {
			out = append(out, id)
		}
	}
	return out
}

// CategoryQuestionCount is len(CategoryQuestionIDs(categoryID)).
func (v *View) CategoryQuestionCount(categoryID string) int {
	return len(v.CategoryQuestionIDs(categoryID))
}

// Mapping returns the question → category mapping restricted to the
// questions in this variant.
func (v *View) Mapping() map[int]string {
	out := make(map[int]string, len(v.ids))
	for _, id := range v.ids {
		if cat, ok := v.mapping[id]; ok {
			out[id] = cat
		}
	}
	return out
}

// Len is the number of questions in the view.
func (v *View) Len() int {
	return len(v.ids)
}
