package notify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type senderMock struct {
	mock.Mock
}

func (s *senderMock) DialAndSend(m ...*gomail.Message) error {
	args := s.Called(m)
	return args.Error(0)
}

func configured() MailConfig {
	return MailConfig{
		Host:     "smtp.qq.com",
		Port:     465,
		Username: "bot@qq.com",
		To:       "me@example.com, you@example.com",
	}
}

func TestMailConfigRecipients(t *testing.T) {
	assert.Equal(t,
		[]string{"me@example.com", "you@example.com"},
		configured().Recipients())
	assert.Nil(t, MailConfig{To: " , "}.Recipients())
	assert.False(t, MailConfig{}.Enabled())
	assert.True(t, configured().Enabled())
}

func TestSendDigestAttachesExistingFiles(t *testing.T) {
	attachment := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, os.WriteFile(attachment, []byte("book"), 0o644))

	send := new(senderMock)
	send.On("DialAndSend", mock.MatchedBy(func(msgs []*gomail.Message) bool {
		if len(msgs) != 1 {
			return false
		}
		return len(msgs[0].GetHeader("To")) == 2
	})).Return(nil)

	m := &Mailer{cfg: configured(), send: send, logger: zap.NewNop()}

	err := m.SendDigest(sampleReport(), attachment, filepath.Join(t.TempDir(), "missing.csv"))

	require.NoError(t, err)
	send.AssertExpectations(t)
}

func TestSendDigestSuppressedWhenNoUpdates(t *testing.T) {
	send := new(senderMock)
	m := &Mailer{cfg: configured(), send: send, logger: zap.NewNop()}

	rep := sampleReport()
	rep.NoUpdates = true
	rep.New = nil
	rep.Updated = nil

	require.NoError(t, m.SendDigest(rep))
	send.AssertNotCalled(t, "DialAndSend", mock.Anything)
}

func TestSendDigestEmptyAllowedWhenConfigured(t *testing.T) {
	send := new(senderMock)
	send.On("DialAndSend", mock.Anything).Return(nil)

	cfg := configured()
	cfg.SendEmpty = true
	m := &Mailer{cfg: cfg, send: send, logger: zap.NewNop()}

	rep := sampleReport()
	rep.NoUpdates = true

	require.NoError(t, m.SendDigest(rep))
	send.AssertExpectations(t)
}

func TestSendDigestSkipsWhenUnconfigured(t *testing.T) {
	send := new(senderMock)
	m := &Mailer{cfg: MailConfig{}, send: send, logger: zap.NewNop()}

	require.NoError(t, m.SendDigest(sampleReport()))
	send.AssertNotCalled(t, "DialAndSend", mock.Anything)
}

func TestSendDigestDeliveryError(t *testing.T) {
	send := new(senderMock)
	send.On("DialAndSend", mock.Anything).Return(errors.New("dial tcp: refused"))

	m := &Mailer{cfg: configured(), send: send, logger: zap.NewNop()}

	err := m.SendDigest(sampleReport())
	assert.ErrorContains(t, err, "send digest email")
}

func TestSendFailureNotice(t *testing.T) {
	send := new(senderMock)
	send.On("DialAndSend", mock.MatchedBy(func(msgs []*gomail.Message) bool {
		return len(msgs) == 1 &&
			msgs[0].GetHeader("Subject")[0] == "招聘信息 2025-08-21：抓取失败"
	})).Return(nil)

	m := &Mailer{cfg: configured(), send: send, logger: zap.NewNop()}

	require.NoError(t, m.SendFailure("2025-08-21", errors.New("status 502")))
	send.AssertExpectations(t)
}
