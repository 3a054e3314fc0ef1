package domain

import (
	"context"

	"cloud.google.com/go/vertexai/genai"
)

// GenerateKind selects the response mode of a content generation call.
type GenerateKind string

const (
	GenerateText   GenerateKind = "text"
	GenerateJSON   GenerateKind = "json"
	GenerateSpeech GenerateKind = "speech"
)

// GenerateRequest is the structured request sent to the AI content service.
// Schema is declared for JSON calls so the model is constrained to the
// expected shape; the response is still validated at the boundary.
type GenerateRequest struct {
	Kind           GenerateKind
	Model          string
	Prompt         string
	Schema         *genai.Schema
	Voice          string
	Grounded       bool
	ThinkingBudget int32
}

// GroundingSource is a citation returned alongside a grounded search answer.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// GenerateResponse is the raw result of a generation call. Text carries the
// payload for text and json kinds; AudioBase64 carries base64-encoded raw
// 16-bit PCM at 24 kHz for speech, empty when synthesis failed.
type GenerateResponse struct {
	Text        string
	AudioBase64 string
	Sources     []GroundingSource
}

// ContentGenerator is the boundary to the generative-language API.
type ContentGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// Verse is a single numbered verse of a chapter.
type Verse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// ChapterResult is the full text of a bible chapter in a given version.
type ChapterResult struct {
	Book    string  `json:"book"`
	Chapter string  `json:"chapter"`
	Version string  `json:"version"`
	Verses  []Verse `json:"verses"`
	Summary string  `json:"summary"`
}

// VerseResult is the exact text of a single passage.
type VerseResult struct {
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

// DeepDiveResult is the five-part exegetical immersion for a passage.
type DeepDiveResult struct {
	Reference string `json:"reference"`
	Intro     struct {
		Author     string `json:"author"`
		Dating     string `json:"dating"`
		Recipients string `json:"recipients"`
	} `json:"intro"`
	HistGeo struct {
		Politics  string `json:"politics"`
		Geography string `json:"geography"`
	} `json:"histGeo"`
	CultArch struct {
		Customs     string `json:"customs"`
		Archaeology string `json:"archaeology"`
	} `json:"cultArch"`
	Literary struct {
		Genre     string `json:"genre"`
		Structure string `json:"structure"`
	} `json:"literary"`
	LingTheo struct {
		Keywords []struct {
			Term    string `json:"term"`
			Lang    string `json:"lang"`
			Meaning string `json:"meaning"`
		} `json:"keywords"`
		Themes string `json:"themes"`
		Canon  string `json:"canon"`
	} `json:"lingTheo"`
}

// CommentaryResult is a detailed exegetical commentary for a passage.
type CommentaryResult struct {
	Passage              string   `json:"passage"`
	Analysis             string   `json:"analysis"`
	HistoricalContext    string   `json:"historicalContext"`
	TheologicalInsights  string   `json:"theologicalInsights"`
	PracticalApplication string   `json:"practicalApplication"`
	Intertextuality      string   `json:"intertextuality"`
	SuggestedOutline     []string `json:"suggestedOutline"`
}

// BiographyResult is the biographical research for a biblical character.
type BiographyResult struct {
	Name              string `json:"name"`
	HistoricalContext string `json:"historicalContext"`
	CulturalContext   string `json:"culturalContext"`
	WorldContext      string `json:"worldContext"`
	References        []struct {
		Book      string `json:"book"`
		Reference string `json:"reference"`
	} `json:"references"`
}

// TranslationResult is the linguistic analysis of a text or term.
type TranslationResult struct {
	Original        string `json:"original"`
	Translated      string `json:"translated"`
	Transliteration string `json:"transliteration,omitempty"`
	Morphology      string `json:"morphology"`
	LexicalRoot     string `json:"lexicalRoot"`
	Meanings        string `json:"meanings"`
	Exegesis        string `json:"exegesis"`
	Hermeneutics    string `json:"hermeneutics"`
	BiblicalExamples []struct {
		Verse   string `json:"verse"`
		Context string `json:"context"`
	} `json:"biblicalExamples"`
	ThematicConcordance []string `json:"thematicConcordance"`
}

// TheologicalDefinition is an exhaustive definition of a theological term.
type TheologicalDefinition struct {
	Term                  string `json:"term"`
	Etymology             string `json:"etymology"`
	Definition            string `json:"definition"`
	HistoricalDevelopment string `json:"historicalDevelopment"`
	OpposingViews         string `json:"opposingViews"`
	BiblicalFoundation    string `json:"biblicalFoundation"`
}

// DictionaryEntry is a Portuguese dictionary lookup result.
type DictionaryEntry struct {
	Definition string   `json:"definition"`
	Etymology  string   `json:"etymology"`
	Class      string   `json:"class"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
	Examples   []string `json:"examples"`
	Notes      string   `json:"notes"`
}

// TimelineEvent is one event of a chronological timeline.
type TimelineEvent struct {
	Period        string `json:"period"`
	Event         string `json:"event"`
	Description   string `json:"description"`
	GlobalHistory string `json:"globalHistory"`
	Reference     string `json:"reference"`
}

// SearchAnswer is a grounded free-form search answer with its sources.
type SearchAnswer struct {
	Text    string            `json:"text"`
	Sources []GroundingSource `json:"sources"`
}

// AIService defines the AI-assisted lookup operations of the studio.
type AIService interface {
	GenerateSermonOutline(ctx context.Context, topic, theme, reference string) (string, error)
	GetBibleChapter(ctx context.Context, book, chapter, version string) (*ChapterResult, error)
	GetVerseText(ctx context.Context, book, reference string) (*VerseResult, error)
	GetDeepDive(ctx context.Context, reference string) (*DeepDiveResult, error)
	GetCommentary(ctx context.Context, passage string) (*CommentaryResult, error)
	GetBiography(ctx context.Context, character string) (*BiographyResult, error)
	Translate(ctx context.Context, text, direction string) (*TranslationResult, error)
	TheologicalLookup(ctx context.Context, term string) (*TheologicalDefinition, error)
	DictionaryLookup(ctx context.Context, word string) (*DictionaryEntry, error)
	GetTimeline(ctx context.Context, reference string) ([]TimelineEvent, error)
	UniversalSearch(ctx context.Context, query string) (*SearchAnswer, error)

	// Synthesize returns base64-encoded PCM speech for the text, after
	// markup stripping and length truncation.
	Synthesize(ctx context.Context, text string) (string, error)
}
