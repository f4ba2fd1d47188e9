package mailservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sushihentaime/quillpad/internal/common"
)

func TestParseTemplate(t *testing.T) {
	template := &Template{}

	testCases := []struct {
		name         string
		templateName string
		data         any
		expectedErr  bool
	}{
		{
			name:         "success",
			templateName: newCommentTemplate,
			data: common.CommentEvent{
				ID:        "c1",
				BlogID:    "b1",
				BlogTitle: "Hello <World>",
				Author:    "ann",
				Content:   "nice post",
				CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			},
			expectedErr: false,
		},
		{
			name:         "invalid template name",
			templateName: "invalid_template.html",
			data:         nil,
			expectedErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, p, h, err := template.ParseTemplate(tc.templateName, tc.data)
			assert.Equal(t, tc.expectedErr, err != nil)

			if err == nil {
				assert.Contains(t, s.String(), "New comment on")
				assert.Contains(t, p.String(), "nice post")
				assert.Contains(t, p.String(), "2024-01-01 12:00 UTC")
				assert.Contains(t, h.String(), "Hello &lt;World&gt;")
			}
		})
	}
}
