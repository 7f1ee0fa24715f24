package domain

import "fmt"

type Category struct {
	Key  string `json:"id"`
	Name string `json:"name"`
}

type Section struct {
	Key        string     `json:"id"`
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
}

var sections = []Section{
	{
		Key:  "community-management",
		Name: "Community Management",
		Categories: []Category{
			{Key: "discord-setup", Name: "Discord Setup"},
			{Key: "bandcamp-groups", Name: "Bandcamp Groups"},
			{Key: "skool-communities", Name: "Skool Communities"},
			{Key: "whop-pages", Name: "Whop Pages"},
		},
	},
	{
		Key:  "affiliate-marketing",
		Name: "Affiliate Marketing Strategies",
		Categories: []Category{
			{Key: "viral-content-tips", Name: "Viral Content Tips"},
			{Key: "affiliate-programs", Name: "Affiliate Programs"},
			{Key: "example-brands", Name: "Example Brands"},
		},
	},
	{
		Key:  "software-hardware",
		Name: "Essential Software & Hardware Links",
		Categories: []Category{
			{Key: "plugins", Name: "Plugins (Waves, Splice)"},
			{Key: "daws", Name: "DAWs (FL Studio, Ableton, Logic)"},
			{Key: "hardware", Name: "Hardware (Mics, Speakers, Monitors)"},
		},
	},
	{
		Key:  "learning-resources",
		Name: "Learning Resources",
		Categories: []Category{
			{Key: "youtube-channels", Name: "YouTube Channels"},
			{Key: "tiktok-creators", Name: "TikTok Creators"},
			{Key: "kick-twitch-tips", Name: "Kick/Twitch Tips"},
		},
	},
	{
		Key:  "local-performance",
		Name: "Local Performance Finder",
		Categories: []Category{
			{Key: "find-venues", Name: "Find Venues"},
		},
	},
}

// Sections returns a copy of the static taxonomy.
func Sections() []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		out[i] = s
		out[i].Categories = append([]Category(nil), s.Categories...)
	}
	return out
}

// Kinds reported by NotFoundError for taxonomy lookups.
const (
	KindSection  Kind = "sections"
	KindCategory Kind = "categories"
)

func LookupSection(key string) (Section, error) {
	for _, s := range sections {
		if s.Key == key {
			return s, nil
		}
	}
	return Section{}, &NotFoundError{Kind: KindSection, ID: key}
}

func LookupCategory(sectionKey, categoryKey string) (Section, Category, error) {
	section, err := LookupSection(sectionKey)
	if err != nil {
		return Section{}, Category{}, err
	}
	for _, c := range section.Categories {
		if c.Key == categoryKey {
			return section, c, nil
		}
	}
	return Section{}, Category{}, &NotFoundError{Kind: KindCategory, ID: sectionKey + "/" + categoryKey}
}

// ValidateCategory returns a ValidationError unless category is declared under section.
func ValidateCategory(sectionKey, categoryKey string) error {
	if _, err := LookupSection(sectionKey); err != nil {
		return &ValidationError{
			Field:   "section",
			Rule:    "taxonomy",
			Message: fmt.Sprintf("unknown section [%s]", sectionKey),
		}
	}
	if _, _, err := LookupCategory(sectionKey, categoryKey); err != nil {
		return &ValidationError{
			Field:   "category",
			Rule:    "taxonomy",
			Message: fmt.Sprintf("category [%s] does not belong to section [%s]", categoryKey, sectionKey),
		}
	}
	return nil
}
