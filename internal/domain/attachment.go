package domain

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
)

// Attachment is a media item attached to a variant when a suggestion is
// accepted. Media is referenced by URL or carried inline; the id is derived
// from the content so repeated accepts reference the same item.
type Attachment struct {
	Type    *string `json:"type,omitempty"`
	URL     *string `json:"url,omitempty"`
	Content []byte  `json:"content,omitempty"`
	ID      *string `json:"id,omitempty"`
}

func (a *Attachment) GetId() (ret string, err error) {
	if a.ID == nil {
		var hash string
		if a.Content != nil {
			hash = fmt.Sprintf("%x", sha256.Sum256(a.Content))
		} else if a.URL != nil {
			data := map[string]string{"url": *a.URL}
			var jsonData []byte
			if jsonData, err = json.Marshal(data); err != nil {
				return ret, err
			}
			hash = fmt.Sprintf("%x", sha256.Sum256(jsonData))
		} else {
			return ret, fmt.Errorf("attachment has no content or url")
		}
		a.ID = &hash
	}
	ret = *a.ID
	return ret, err
}

func (a *Attachment) ResolveType() (ret string, err error) {
	if a.Type != nil {
		ret = *a.Type
		return ret, err
	}
	if a.Content != nil {
		ret = mimetype.Detect(a.Content).String()
		return ret, err
	}
	if a.URL != nil {
		var resp *http.Response
		if resp, err = http.Head(*a.URL); err != nil {
			return ret, err
		}
		defer resp.Body.Close()
		ret = resp.Header.Get("Content-Type")
		return ret, err
	}
	err = fmt.Errorf("attachment has no type and no content to derive it from")
	return ret, err
}
