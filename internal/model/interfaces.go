package model

type Lemmatizer interface {
	Lemmatize(string) string
}

type Catalog interface {
	Import(string, string) (*RulesetEntry, error)
	Get(string) (*RulesetEntry, error)
	List() ([]RulesetEntry, error)
	Delete(string) error
}
