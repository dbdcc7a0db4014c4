package llm

import (
	"fmt"

	"github.com/idworks/idscan/constants"
)

// Instructions is the fixed extraction prompt. It is sent exactly once per
// batch, ahead of every image block.
const Instructions = `We have multiple ID images. For each image, extract all text in an organized way. ` +
	`I don't need a physical description of the person. I only want these printed text fields:

First name, Last name, Date of birth (DOB), Place of birth, Address, State, Country, ` +
	`Drivers license (DL) number or passport number, Class, Sex, Height (HGT), Weight (WGT), ` +
	`Hair, Eyes, Issue date (ISS), Expiration date (EXP).

For any missing fields, respond with 'N/A'. Please return the final result in JSON, ` +
	`as an array of objects. Each object should correspond to a single image and have the structure:

  {
    "filename": <string>,
    "id_type": <string>,
    "id_number": <string>,
    "first_name": <string>,
    "last_name": <string>,
    "dob": <string>,
    "place_of_birth": <string>,
    "address": <string>,
    "state": <string>,
    "country": <string>,
    "class": <string>,
    "sex": <string>,
    "hgt": <string>,
    "wgt": <string>,
    "hair": <string>,
    "eyes": <string>,
    "issue_date_iss": <string>,
    "expiration_date_exp": <string>
  }

Use snake_case for the JSON keys, as shown above.`

// ImageAttachment is one preprocessed image queued for the batch request.
type ImageAttachment struct {
	Filename string
	Data     []byte
}

// RequestBuilder accumulates ordered content blocks and yields an immutable
// request payload.
type RequestBuilder struct {
	model  string
	blocks []ContentBlock
}

func NewRequestBuilder(model string) *RequestBuilder {
	return &RequestBuilder{model: model}
}

// AddText appends a text block.
func (b *RequestBuilder) AddText(text string) *RequestBuilder {
	b.blocks = append(b.blocks, ContentBlock{Type: "text", Text: text})
	return b
}

// AddImage appends an embedded-image block.
func (b *RequestBuilder) AddImage(dataURL string) *RequestBuilder {
	b.blocks = append(b.blocks, ContentBlock{Type: "image_url", ImageURL: &ImageURL{URL: dataURL}})
	return b
}

// Len returns the number of accumulated blocks.
func (b *RequestBuilder) Len() int {
	return len(b.blocks)
}

// Build returns the finished payload. The returned request owns its own
// copy of the block slice; further builder mutation does not affect it.
func (b *RequestBuilder) Build() ChatRequest {
	content := make([]ContentBlock, len(b.blocks))
	copy(content, b.blocks)
	return ChatRequest{
		Model:     b.model,
		MaxTokens: DefaultMaxTokens,
		TopP:      DefaultTopP,
		TopK:      DefaultTopK,
		Messages: []Message{
			{Role: "user", Content: content},
		},
	}
}

// BuildBatchRequest assembles the single combined request: the instruction
// block first, then one image block and one caption per attachment, in the
// order given. Callers must pass attachments in sorted filename order so
// the payload is deterministic.
func BuildBatchRequest(model string, images []ImageAttachment) ChatRequest {
	b := NewRequestBuilder(model)
	b.AddText(Instructions)
	for _, img := range images {
		idType := constants.DetectIDType(img.Filename)
		b.AddImage(EncodeDataURL(img.Filename, img.Data))
		b.AddText(fmt.Sprintf(
			"This image is named %s. The ID type for this image is %s. "+
				"Extract the text and include the correct 'id_type' in the JSON output.",
			img.Filename, idType,
		))
	}
	return b.Build()
}
