package suppliers

// Framework is a procurement framework as served by the Data API.
type Framework struct {
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Lots   []Lot  `json:"lots"`
}

// Lot is a single lot within a framework.
type Lot struct {
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	OneServiceLimit bool   `json:"oneServiceLimit"`
}

// Lot returns the lot with the given slug, if the framework has one.
func (f *Framework) Lot(slug string) (*Lot, bool) {
	for i := range f.Lots {
		if f.Lots[i].Slug == slug {
			return &f.Lots[i], true
		}
	}
	return nil, false
}

// DraftService is a supplier's in-progress service submission.
type DraftService struct {
	ID          int    `json:"id"`
	LotSlug     string `json:"lotSlug"`
	ServiceName string `json:"serviceName"`
	Status      string `json:"status"`
}
