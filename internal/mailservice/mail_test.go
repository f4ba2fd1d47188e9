package mailservice

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendEmail(t *testing.T) {
	testCases := []struct {
		name      string
		parseErr  error
		dialErr   error
		expectErr bool
	}{
		{name: "success"},
		{name: "template error", parseErr: errors.New("bad template"), expectErr: true},
		{name: "dial error", dialErr: errors.New("connection refused"), expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockParser := new(MockTemplate)
			mockDialer := new(MockDialer)

			mailer := &Mail{
				dialer: mockDialer,
				parser: mockParser,
				sender: "sender@example.com",
			}

			subject := bytes.NewBufferString("Test Subject")
			plainBody := bytes.NewBufferString("Test Plain Body")
			htmlBody := bytes.NewBufferString("Test HTML Body")
			mockParser.On("ParseTemplate", "template.html", mock.Anything).Return(subject, plainBody, htmlBody, tc.parseErr)

			if tc.parseErr == nil {
				mockDialer.On("DialAndSend", mock.MatchedBy(func(msgs []*mail.Message) bool {
					return len(msgs) == 1 &&
						msgs[0].GetHeader("To")[0] == "owner@example.com" &&
						msgs[0].GetHeader("From")[0] == "sender@example.com" &&
						msgs[0].GetHeader("Subject")[0] == "Test Subject" &&
						len(msgs[0].GetHeader("Date")) == 1
				})).Return(tc.dialErr)
			}

			err := mailer.send("owner@example.com", struct{}{}, "template.html")
			assert.Equal(t, tc.expectErr, err != nil)

			mockParser.AssertExpectations(t)
			mockDialer.AssertExpectations(t)
		})
	}
}

func TestNewMailerTimeout(t *testing.T) {
	testCases := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{name: "default", want: defaultDialTimeout},
		{name: "configured", timeout: 30 * time.Second, want: 30 * time.Second},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, Sender: "sender@example.com", Timeout: tc.timeout}, NewTemplate())

			dialer, ok := m.dialer.(*mail.Dialer)
			if assert.True(t, ok) {
				assert.Equal(t, tc.want, dialer.Timeout)
				assert.Equal(t, "smtp.example.com", dialer.Host)
			}
			assert.Equal(t, "sender@example.com", m.sender)
		})
	}
}
