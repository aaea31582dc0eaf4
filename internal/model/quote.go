package model

import (
	"errors"
	"strings"
)

// Quote is a single playable teaching from the content catalog.
type Quote struct {
	ID          string `json:"id" yaml:"id"`
	Text        string `json:"text" yaml:"text"`
	Attribution string `json:"attribution" yaml:"attribution"`
	Reference   string `json:"reference" yaml:"reference"`
	Category    string `json:"category" yaml:"category"`
	Explanation string `json:"explanation" yaml:"explanation"`
	ImageURL    string `json:"imageUrl" yaml:"image_url"`
	AudioURL    string `json:"audioUrl" yaml:"audio_url"`
	Duration    int    `json:"duration,omitempty" yaml:"duration"`
}

func (q Quote) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return errors.New("model: quote id is required")
	}
	if strings.TrimSpace(q.Text) == "" {
		return errors.New("model: quote text is required")
	}
	if strings.TrimSpace(q.Category) == "" {
		return errors.New("model: quote category is required")
	}
	if q.Duration < 0 {
		return errors.New("model: quote duration must not be negative")
	}
	return nil
}

type Category struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Icon        string `json:"icon" yaml:"icon"`
	Description string `json:"description" yaml:"description"`
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: category id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("model: category name is required")
	}
	return nil
}
