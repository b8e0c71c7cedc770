package skill

type Kind string

const (
	KindHard Kind = "hard"
	KindSoft Kind = "soft"
)

type Keyword struct {
	Name string
	Kind Kind
}

// Vocabulary is the fixed list of canonical skills recognised in free text.
var Vocabulary = []Keyword{
	// languages
	{"javascript", KindHard},
	{"typescript", KindHard},
	{"python", KindHard},
	{"java", KindHard},
	{"c++", KindHard},
	{"c#", KindHard},
	{"php", KindHard},
	{"ruby", KindHard},
	{"go", KindHard},
	{"golang", KindHard},
	{"rust", KindHard},
	{"kotlin", KindHard},
	{"swift", KindHard},
	{"dart", KindHard},
	{"html", KindHard},
	{"css", KindHard},
	{"sql", KindHard},

	// frameworks and runtimes
	{"react", KindHard},
	{"react native", KindHard},
	{"angular", KindHard},
	{"vue", KindHard},
	{"next.js", KindHard},
	{"node.js", KindHard},
	{"express", KindHard},
	{"django", KindHard},
	{"flask", KindHard},
	{"laravel", KindHard},
	{"spring", KindHard},
	{".net", KindHard},
	{"flutter", KindHard},
	{"tailwind", KindHard},

	// data
	{"postgresql", KindHard},
	{"mysql", KindHard},
	{"mongodb", KindHard},
	{"redis", KindHard},
	{"excel", KindHard},
	{"power bi", KindHard},
	{"machine learning", KindHard},
	{"data analysis", KindHard},

	// infrastructure and tooling
	{"docker", KindHard},
	{"kubernetes", KindHard},
	{"aws", KindHard},
	{"azure", KindHard},
	{"gcp", KindHard},
	{"linux", KindHard},
	{"git", KindHard},
	{"ci/cd", KindHard},
	{"devops", KindHard},
	{"graphql", KindHard},
	{"rest", KindHard},
	{"api", KindHard},
	{"figma", KindHard},
	{"photoshop", KindHard},
	{"seo", KindHard},
	{"marketing", KindHard},
	{"comptabilité", KindHard},
	{"agile", KindHard},
	{"scrum", KindHard},

	// soft skills
	{"communication", KindSoft},
	{"leadership", KindSoft},
	{"teamwork", KindSoft},
	{"travail d'équipe", KindSoft},
	{"problem solving", KindSoft},
	{"gestion de projet", KindSoft},
	{"project management", KindSoft},
	{"autonomie", KindSoft},
	{"créativité", KindSoft},
	{"organisation", KindSoft},
	{"négociation", KindSoft},
	{"adaptabilité", KindSoft},
	{"esprit critique", KindSoft},
}

// KindOf returns the kind of a canonical skill name, and false when name is
// not part of the vocabulary.
func KindOf(name string) (Kind, bool) {
	for _, k := range Vocabulary {
		if k.Name == name {
			return k.Kind, true
		}
	}
	return "", false
}
