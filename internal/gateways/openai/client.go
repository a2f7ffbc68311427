// Package openai wraps the OpenAI API for quote generation, image
// generation, image facts, and audio transcription.
package openai

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"regexp"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
)

const quoteSystemPrompt = "You are a motivational coach. Generate a short, powerful motivational quote (under 120 characters). Respond with ONLY the quote text, no JSON, no formatting, no quotation marks around the entire response. Example: The future belongs to those who believe in the beauty of their dreams."

var fallbackQuotes = []Quote{
	{Text: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt"},
	{Text: "Success is not final, failure is not fatal: it is the courage to continue that counts.", Author: "Winston Churchill"},
	{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
	{Text: "Innovation distinguishes between a leader and a follower.", Author: "Steve Jobs"},
	{Text: "Your time is limited, don't waste it living someone else's life.", Author: "Steve Jobs"},
	{Text: "Be yourself; everyone else is already taken.", Author: "Oscar Wilde"},
	{Text: "Two things are infinite: the universe and human stupidity; and I'm not sure about the universe.", Author: "Albert Einstein"},
	{Text: "The only impossible journey is the one you never begin.", Author: "Tony Robbins"},
}

// Prompts for the image-fact endpoint, keyed by language code.
var factPrompts = map[string]string{
	"english": "Generate a fun, interesting fact about this image. Make it educational and engaging. Keep it under 100 words.",
	"kyrgyz":  "Бул сүрөт жөнүндө кызыктуу, көңүл ачуучу факт жазыңыз. Билим берүүчү жана кызыктуу болсун. 100 сөзмөн аз болсун.",
	"russian": "Создайте интересный, увлекательный факт об этом изображении. Сделайте его познавательным и захватывающим. Не более 100 слов.",
	"turkish": "Bu görsel hakkında eğlenceli, ilginç bir gerçek oluşturun. Eğitici ve ilgi çekici olsun. 100 kelimeden az olsun.",
}

var imageSizes = map[string]bool{
	goopenai.CreateImageSize1024x1024: true,
	goopenai.CreateImageSize1792x1024: true,
	goopenai.CreateImageSize1024x1792: true,
}

type Quote struct {
	Text   string `json:"quote"`
	Author string `json:"author"`
	Theme  string `json:"theme,omitempty"`
}

type GeneratedImage struct {
	URL    string `json:"imageUrl"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
}

type Fact struct {
	Text     string `json:"fact"`
	Language string `json:"language"`
	ImageURL string `json:"imageUrl"`
}

type Client struct {
	api *goopenai.Client
}

func NewClient(apiKey string) *Client {
	return &Client{api: goopenai.NewClient(apiKey)}
}

// newClientWithBaseURL points the client at a stand-in server in tests.
func newClientWithBaseURL(apiKey, baseURL string) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{api: goopenai.NewClientWithConfig(cfg)}
}

// MotivationalQuote asks the model for a short quote on the given theme.
// The model sometimes wraps its answer in quotes or half-formed JSON, so
// the reply is scrubbed; anything still malformed falls back to a curated
// quote rather than surfacing an error to the caller.
func (c *Client) MotivationalQuote(ctx context.Context, theme string) (Quote, error) {
	if theme == "" {
		theme = "general"
	}
	userPrompt := fmt.Sprintf("Generate a motivational quote about %s for someone working on their personal growth.", theme)
	if theme == "general" {
		userPrompt = "Generate a powerful motivational quote for someone working on their personal projects and goals."
	}

	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: goopenai.GPT4oMini,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: quoteSystemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   100,
		Temperature: 0.9,
	})
	if err != nil || len(resp.Choices) == 0 {
		return fallbackQuote(), nil
	}

	text := cleanQuote(resp.Choices[0].Message.Content)
	if len(text) < 10 || strings.ContainsAny(text, "{}") {
		return fallbackQuote(), nil
	}

	q := Quote{Text: text, Author: "Anonymous"}
	if theme != "general" {
		q.Theme = theme
	}
	return q, nil
}

// GenerateImage produces one DALL-E 3 image and returns its hosted URL.
func (c *Client) GenerateImage(ctx context.Context, prompt, size string) (GeneratedImage, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return GeneratedImage{}, fmt.Errorf("prompt is required")
	}
	if size == "" {
		size = goopenai.CreateImageSize1024x1024
	}
	if !imageSizes[size] {
		return GeneratedImage{}, fmt.Errorf("unsupported image size %q", size)
	}

	resp, err := c.api.CreateImage(ctx, goopenai.ImageRequest{
		Model:   goopenai.CreateImageModelDallE3,
		Prompt:  prompt,
		Size:    size,
		Quality: goopenai.CreateImageQualityStandard,
		N:       1,
	})
	if err != nil {
		return GeneratedImage{}, fmt.Errorf("generate image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return GeneratedImage{}, fmt.Errorf("no image URL received")
	}

	return GeneratedImage{URL: resp.Data[0].URL, Prompt: prompt, Size: size}, nil
}

// ImageFact asks the vision model for a short fact about the image at the
// given URL. Unknown languages fall back to English.
func (c *Client) ImageFact(ctx context.Context, imageURL, language string) (Fact, error) {
	if imageURL == "" {
		return Fact{}, fmt.Errorf("image URL is required")
	}
	if language == "" {
		language = "english"
	}
	prompt, ok := factPrompts[language]
	if !ok {
		prompt = factPrompts["english"]
	}

	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: goopenai.GPT4o,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role: goopenai.ChatMessageRoleUser,
				MultiContent: []goopenai.ChatMessagePart{
					{Type: goopenai.ChatMessagePartTypeText, Text: prompt},
					{Type: goopenai.ChatMessagePartTypeImageURL, ImageURL: &goopenai.ChatMessageImageURL{URL: imageURL}},
				},
			},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil {
		return Fact{}, fmt.Errorf("generate fact: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Fact{}, fmt.Errorf("no fact generated")
	}

	return Fact{
		Text:     strings.TrimSpace(resp.Choices[0].Message.Content),
		Language: language,
		ImageURL: imageURL,
	}, nil
}

// Transcribe runs Whisper over the uploaded audio and returns plain text.
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    goopenai.Whisper1,
		FilePath: filename,
		Reader:   audio,
		Language: "en",
		Format:   goopenai.AudioResponseFormatText,
	})
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	return resp.Text, nil
}

var (
	surroundingQuotesRe = regexp.MustCompile(`^["']|["']$`)
	backticksRe         = regexp.MustCompile("^`+|`+$")
	jsonPrefixRe        = regexp.MustCompile(`(?i)^json\s*`)
	jsonObjectRe        = regexp.MustCompile(`^\{.*?\}`)
	quotePrefixRe       = regexp.MustCompile(`(?i)quote:\s*`)
	authorSuffixRe      = regexp.MustCompile(`(?i)author:\s*.*$`)
	trailingJunkRe      = regexp.MustCompile(`[,\s]*$`)
)

// cleanQuote strips the formatting artifacts the model tends to add despite
// being told not to.
func cleanQuote(s string) string {
	s = strings.TrimSpace(s)
	s = surroundingQuotesRe.ReplaceAllString(s, "")
	s = backticksRe.ReplaceAllString(s, "")
	s = jsonPrefixRe.ReplaceAllString(s, "")
	s = jsonObjectRe.ReplaceAllString(s, "")
	s = quotePrefixRe.ReplaceAllString(s, "")
	s = authorSuffixRe.ReplaceAllString(s, "")
	s = trailingJunkRe.ReplaceAllString(s, "")
	return s
}

func fallbackQuote() Quote {
	return fallbackQuotes[rand.Intn(len(fallbackQuotes))]
}
