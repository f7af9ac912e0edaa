package model

// Step identifies where a user currently is in a multi-step conversation.
type Step string

const (
	StepIdle          Step = "idle"
	StepAwaitLanguage Step = "awaiting_language"
	StepAwaitName     Step = "awaiting_name"
	StepAwaitPhone    Step = "awaiting_phone"
	StepAwaitRegion   Step = "awaiting_region"
	StepAwaitRating   Step = "awaiting_rating"
	StepAwaitSupport  Step = "awaiting_support_message"
	StepAwaitListPage Step = "awaiting_list_page"
)

// Session holds one user's in-flight conversation state. It is transient:
// the default store keeps it in process memory and a restart drops it.
type Session struct {
	Step     Step   `json:"step"`
	Language string `json:"language,omitempty"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Region   string `json:"region,omitempty"`

	// ListPage is the zero-based admin listing page, meaningful only
	// while Step is StepAwaitListPage.
	ListPage int `json:"list_page,omitempty"`
}

func NewSession() *Session { return &Session{Step: StepIdle} }
