package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"kerygma-studio/internal/domain"

	"cloud.google.com/go/vertexai/genai"

	apperrors "kerygma-studio/pkg/errors"
)

// Model selection mirrors the upstream service: the pro model for long-form
// theological work, the flash model for structured lookups, and the TTS
// model for speech.
const (
	sermonModel = "gemini-3-pro-preview"
	lookupModel = "gemini-3-flash-preview"
	speechModel = "gemini-2.5-flash-preview-tts"
)

type aiService struct {
	generator      domain.ContentGenerator
	logger         domain.Logger
	voice          string
	speechMaxChars int
}

// NewAIService creates the AI lookup service on top of a content generator.
func NewAIService(generator domain.ContentGenerator, logger domain.Logger, voice string, speechMaxChars int) domain.AIService {
	if voice == "" {
		voice = "Puck"
	}
	if speechMaxChars <= 0 {
		speechMaxChars = domain.SpeechMaxChars
	}
	return &aiService{
		generator:      generator,
		logger:         logger,
		voice:          voice,
		speechMaxChars: speechMaxChars,
	}
}

// stripFences removes markdown code-fence delimiters the model sometimes
// wraps JSON payloads in.
func stripFences(s string) string {
	cleaned := strings.ReplaceAll(s, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// parseInto fence-strips and parses a JSON response into out, converting
// parse failures into the invalid-response error kind.
func (s *aiService) parseInto(raw string, out interface{}) error {
	cleaned := stripFences(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		s.logger.Error("AI response is not valid JSON after fence stripping", err)
		return apperrors.NewInvalidResponseError("resposta da IA em formato inválido", err)
	}
	return nil
}

func invalidResponse(detail string) error {
	return apperrors.NewInvalidResponseError("resposta da IA em formato inválido", fmt.Errorf("%s", detail))
}

// Schema construction helpers.

func strSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeString}
}

func intSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeInteger}
}

func arrSchema(items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items}
}

func objSchema(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func (s *aiService) generateJSON(ctx context.Context, model, prompt string, schema *genai.Schema, out interface{}) error {
	resp, err := s.generator.Generate(ctx, domain.GenerateRequest{
		Kind:   domain.GenerateJSON,
		Model:  model,
		Prompt: prompt,
		Schema: schema,
	})
	if err != nil {
		return apperrors.NewNetworkError("AI content service call failed", err)
	}
	return s.parseInto(resp.Text, out)
}

func (s *aiService) GenerateSermonOutline(ctx context.Context, topic, theme, reference string) (string, error) {
	if reference == "" {
		reference = "Sugerir uma apropriada"
	}
	prompt := fmt.Sprintf(`Aja como um renomado teólogo e pregador exegético. Crie um sermão completo baseado no assunto "%s", tema "%s" e na referência "%s".

ESTRUTURA:
1. PREPARAÇÃO (Versículos), 2. EXEGESE, 3. HERMENÊUTICA, 4. NARRAÇÃO DRAMÁTICA, 5. TEMA, 6. GANCHO, 7. QUEBRA-GELO, 8. INTRODUÇÃO, 9. CORPO (3 PONTOS), 10. CONCLUSÃO.`, topic, theme, reference)

	resp, err := s.generator.Generate(ctx, domain.GenerateRequest{
		Kind:           domain.GenerateText,
		Model:          sermonModel,
		Prompt:         prompt,
		ThinkingBudget: 4000,
	})
	if err != nil {
		return "", apperrors.NewNetworkError("AI content service call failed", err)
	}
	return resp.Text, nil
}

func (s *aiService) GetBibleChapter(ctx context.Context, book, chapter, version string) (*domain.ChapterResult, error) {
	prompt := fmt.Sprintf(`Retorne o texto integral do livro %s, capítulo %s, na versão %s.
Retorne em JSON: book, chapter, version, verses (array de {number, text}), summary.`, book, chapter, version)

	schema := objSchema(map[string]*genai.Schema{
		"book":    strSchema(),
		"chapter": strSchema(),
		"version": strSchema(),
		"verses": arrSchema(objSchema(map[string]*genai.Schema{
			"number": intSchema(),
			"text":   strSchema(),
		})),
		"summary": strSchema(),
	})

	var result domain.ChapterResult
	if err := s.generateJSON(ctx, lookupModel, prompt, schema, &result); err != nil {
		return nil, err
	}
	if result.Book == "" || len(result.Verses) == 0 {
		return nil, invalidResponse("chapter result missing book or verses")
	}
	return &result, nil
}

func (s *aiService) GetVerseText(ctx context.Context, book, reference string) (*domain.VerseResult, error) {
	prompt := fmt.Sprintf(`Retorne o texto bíblico exato para a passagem: %s %s.
Use a versão Almeida Corrigida Fiel (ACF).
Retorne em JSON: { "text": "texto integral aqui", "reference": "%s %s" }.`, book, reference, book, reference)

	schema := objSchema(map[string]*genai.Schema{
		"text":      strSchema(),
		"reference": strSchema(),
	}, "text", "reference")

	var result domain.VerseResult
	if err := s.generateJSON(ctx, lookupModel, prompt, schema, &result); err != nil {
		return nil, err
	}
	if result.Text == "" {
		return nil, invalidResponse("verse result missing text")
	}
	return &result, nil
}

func (s *aiService) GetDeepDive(ctx context.Context, reference string) (*domain.DeepDiveResult, error) {
	prompt := fmt.Sprintf(`Realize uma imersão exegética profunda na passagem bíblica: "%s".
O resultado deve ser um JSON estruturado seguindo exatamente estes 5 pontos:
1. Contexto Introdutório (Autor, Data, Destinatários).
2. Contexto Histórico e Geográfico (Cenário Político, Geografia).
3. Contexto Cultural e Arqueológico (Costumes, Descobertas).
4. Análise Literária (Gênero, Estrutura).
5. Análise Linguística e Teológica (Palavras-chave em Grego/Hebraico, Temas Centrais, Relação com o Cânon).`, reference)

	schema := objSchema(map[string]*genai.Schema{
		"reference": strSchema(),
		"intro": objSchema(map[string]*genai.Schema{
			"author":     strSchema(),
			"dating":     strSchema(),
			"recipients": strSchema(),
		}),
		"histGeo": objSchema(map[string]*genai.Schema{
			"politics":  strSchema(),
			"geography": strSchema(),
		}),
		"cultArch": objSchema(map[string]*genai.Schema{
			"customs":     strSchema(),
			"archaeology": strSchema(),
		}),
		"literary": objSchema(map[string]*genai.Schema{
			"genre":     strSchema(),
			"structure": strSchema(),
		}),
		"lingTheo": objSchema(map[string]*genai.Schema{
			"keywords": arrSchema(objSchema(map[string]*genai.Schema{
				"term":    strSchema(),
				"lang":    strSchema(),
				"meaning": strSchema(),
			})),
			"themes": strSchema(),
			"canon":  strSchema(),
		}),
	}, "reference", "intro", "histGeo", "cultArch", "literary", "lingTheo")

	var result domain.DeepDiveResult
	if err := s.generateJSON(ctx, sermonModel, prompt, schema, &result); err != nil {
		return nil, err
	}
	if result.Reference == "" {
		return nil, invalidResponse("deep dive result missing reference")
	}
	return &result, nil
}

func (s *aiService) GetCommentary(ctx context.Context, passage string) (*domain.CommentaryResult, error) {
	prompt := fmt.Sprintf(`Forneça um comentário exegético profundo e detalhado para a passagem bíblica: "%s".
Certifique-se de preencher todos os campos com rigor acadêmico e profundidade teológica.`, passage)

	schema := objSchema(map[string]*genai.Schema{
		"passage":              strSchema(),
		"analysis":             strSchema(),
		"historicalContext":    strSchema(),
		"theologicalInsights":  strSchema(),
		"practicalApplication": strSchema(),
		"intertextuality":      strSchema(),
		"suggestedOutline":     arrSchema(strSchema()),
	}, "passage", "analysis", "historicalContext", "theologicalInsights", "practicalApplication", "intertextuality", "suggestedOutline")

	var result domain.CommentaryResult
	if err := s.generateJSON(ctx, sermonModel, prompt, schema, &result); err != nil {
		return nil, err
	}
	if result.Passage == "" || result.Analysis == "" {
		return nil, invalidResponse("commentary result missing required fields")
	}
	return &result, nil
}

func (s *aiService) GetBiography(ctx context.Context, character string) (*domain.BiographyResult, error) {
	prompt := fmt.Sprintf(`Realize uma pesquisa biográfica profunda do personagem bíblico: "%s".
Retorne informações de contexto histórico, cultural e mundial da época dele.
Liste também as principais passagens bíblicas (apenas Livro e Referência cap:ver).`, character)

	schema := objSchema(map[string]*genai.Schema{
		"name":              strSchema(),
		"historicalContext": strSchema(),
		"culturalContext":   strSchema(),
		"worldContext":      strSchema(),
		"references": arrSchema(objSchema(map[string]*genai.Schema{
			"book":      strSchema(),
			"reference": strSchema(),
		})),
	}, "name", "historicalContext", "culturalContext", "worldContext", "references")

	var result domain.BiographyResult
	if err := s.generateJSON(ctx, sermonModel, prompt, schema, &result); err != nil {
		return nil, err
	}
	if result.Name == "" {
		return nil, invalidResponse("biography result missing name")
	}
	return &result, nil
}

func (s *aiService) Translate(ctx context.Context, text, direction string) (*domain.TranslationResult, error) {
	prompt := fmt.Sprintf(`Analise linguisticamente: "%s" na direção %s.`, text, direction)

	schema := objSchema(map[string]*genai.Schema{
		"original":        strSchema(),
		"translated":      strSchema(),
		"transliteration": strSchema(),
		"morphology":      strSchema(),
		"lexicalRoot":     strSchema(),
		"meanings":        strSchema(),
		"exegesis":        strSchema(),
		"hermeneutics":    strSchema(),
		"biblicalExamples": arrSchema(objSchema(map[string]*genai.Schema{
			"verse":   strSchema(),
			"context": strSchema(),
		})),
		"thematicConcordance": arrSchema(strSchema()),
	}, "original", "translated", "morphology", "lexicalRoot")

	var result domain.TranslationResult
	if err := s.generateJSON(ctx, sermonModel, prompt, schema, &result); err != nil {
		return nil, err
	}
	if result.Original == "" || result.Translated == "" {
		return nil, invalidResponse("translation result missing required fields")
	}
	return &result, nil
}

func (s *aiService) TheologicalLookup(ctx context.Context, term string) (*domain.TheologicalDefinition, error) {
	prompt := fmt.Sprintf(`Defina exaustivamente o termo teológico: "%s".
Forneça etimologia, definição clara, desenvolvimento histórico (como o conceito evoluiu), visões opostas ou debates, e a fundamentação bíblica.
NÃO repita o termo desnecessariamente.`, term)

	schema := objSchema(map[string]*genai.Schema{
		"term":                  strSchema(),
		"etymology":             strSchema(),
		"definition":            strSchema(),
		"historicalDevelopment": strSchema(),
		"opposingViews":         strSchema(),
		"biblicalFoundation":    strSchema(),
	}, "term", "etymology", "definition", "historicalDevelopment", "opposingViews", "biblicalFoundation")

	var result domain.TheologicalDefinition
	if err := s.generateJSON(ctx, sermonModel, prompt, schema, &result); err != nil {
		return nil, err
	}
	if result.Term == "" || result.Definition == "" {
		return nil, invalidResponse("theological definition missing required fields")
	}
	return &result, nil
}

func (s *aiService) DictionaryLookup(ctx context.Context, word string) (*domain.DictionaryEntry, error) {
	prompt := fmt.Sprintf("Dicionário para a palavra: %s", word)

	schema := objSchema(map[string]*genai.Schema{
		"definition": strSchema(),
		"etymology":  strSchema(),
		"class":      strSchema(),
		"synonyms":   arrSchema(strSchema()),
		"antonyms":   arrSchema(strSchema()),
		"examples":   arrSchema(strSchema()),
		"notes":      strSchema(),
	})

	var result domain.DictionaryEntry
	if err := s.generateJSON(ctx, lookupModel, prompt, schema, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *aiService) GetTimeline(ctx context.Context, reference string) ([]domain.TimelineEvent, error) {
	prompt := fmt.Sprintf("Cronologia para: %s", reference)

	schema := arrSchema(objSchema(map[string]*genai.Schema{
		"period":        strSchema(),
		"event":         strSchema(),
		"description":   strSchema(),
		"globalHistory": strSchema(),
		"reference":     strSchema(),
	}))

	var events []domain.TimelineEvent
	if err := s.generateJSON(ctx, lookupModel, prompt, schema, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *aiService) UniversalSearch(ctx context.Context, query string) (*domain.SearchAnswer, error) {
	resp, err := s.generator.Generate(ctx, domain.GenerateRequest{
		Kind:     domain.GenerateText,
		Model:    lookupModel,
		Prompt:   query,
		Grounded: true,
	})
	if err != nil {
		return nil, apperrors.NewNetworkError("AI content service call failed", err)
	}
	return &domain.SearchAnswer{
		Text:    resp.Text,
		Sources: resp.Sources,
	}, nil
}

func (s *aiService) Synthesize(ctx context.Context, text string) (string, error) {
	clean := PrepareSpeechText(text, s.speechMaxChars)
	prompt := "Leia com voz inspiradora de pregador: " + clean

	resp, err := s.generator.Generate(ctx, domain.GenerateRequest{
		Kind:   domain.GenerateSpeech,
		Model:  speechModel,
		Prompt: prompt,
		Voice:  s.voice,
	})
	if err != nil {
		return "", apperrors.NewNetworkError("speech synthesis call failed", err)
	}
	if resp.AudioBase64 == "" {
		return "", apperrors.NewProcessingError("speech synthesis returned no audio", domain.ErrSpeechUnavailable)
	}
	return resp.AudioBase64, nil
}
