package share

import (
	"context"
	"errors"
	"testing"

	"github.com/smallwat3r/otshare/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) SubmitSecret(ctx context.Context, text, passphrase string, region domain.Region, ttl domain.TTL) (string, error) {
	args := m.Called(ctx, text, passphrase, region, ttl)
	return args.String(0), args.Error(1)
}

// fakeHost records every interaction so tests can assert on the UI flow.
type fakeHost struct {
	text        string
	noEditor    bool
	passphrase  string
	dismissed   bool
	promptErr   error
	choose      string
	clipErr     error
	progress    []string
	infos       []string
	errors      []string
	clipboard   string
	promptCalls int
}

func (h *fakeHost) SelectedText() (string, bool) {
	return h.text, !h.noEditor
}

func (h *fakeHost) PromptPassphrase(ctx context.Context, prompt string) (string, bool, error) {
	h.promptCalls++
	if h.promptErr != nil {
		return "", false, h.promptErr
	}
	if h.dismissed {
		return "", false, nil
	}
	return h.passphrase, true, nil
}

func (h *fakeHost) WithProgress(ctx context.Context, title string, fn func(context.Context) error) error {
	h.progress = append(h.progress, title)
	return fn(ctx)
}

func (h *fakeHost) Notify(ctx context.Context, message string, actions ...string) (string, error) {
	h.infos = append(h.infos, message)
	for _, a := range actions {
		if a == h.choose {
			return a, nil
		}
	}
	return "", nil
}

func (h *fakeHost) NotifyError(ctx context.Context, message string) {
	h.errors = append(h.errors, message)
}

func (h *fakeHost) WriteClipboard(ctx context.Context, text string) error {
	if h.clipErr != nil {
		return h.clipErr
	}
	h.clipboard = text
	return nil
}

func TestCommand_Run_CopyURL(t *testing.T) {
	sub := &mockSubmitter{}
	sub.On("SubmitSecret", mock.Anything, "hello world", "", domain.RegionEU, domain.TTLSevenDays).
		Return("https://eu.onetimesecret.com/secret/s1", nil).Once()

	host := &fakeHost{text: "hello world", dismissed: true, choose: domain.CopyURLAction}
	url, err := NewCommand(sub, domain.RegionEU, domain.TTLSevenDays).Run(context.Background(), host)

	require.NoError(t, err)
	assert.Equal(t, "https://eu.onetimesecret.com/secret/s1", url)
	assert.Equal(t, url, host.clipboard)
	assert.Equal(t, []string{domain.ProgressTitle}, host.progress)
	assert.Equal(t, []string{domain.CreatedMessage, domain.CopiedMessage}, host.infos)
	assert.Empty(t, host.errors)
	sub.AssertExpectations(t)
}

func TestCommand_Run_NoCopy(t *testing.T) {
	sub := &mockSubmitter{}
	sub.On("SubmitSecret", mock.Anything, "text", "pw", domain.RegionUS, domain.TTLOneHour).
		Return("https://us.onetimesecret.com/secret/s2", nil).Once()

	host := &fakeHost{text: "text", passphrase: "pw"}
	url, err := NewCommand(sub, domain.RegionUS, domain.TTLOneHour).Run(context.Background(), host)

	require.NoError(t, err)
	assert.Equal(t, "https://us.onetimesecret.com/secret/s2", url)
	assert.Empty(t, host.clipboard)
	assert.Equal(t, []string{domain.CreatedMessage}, host.infos)
	sub.AssertExpectations(t)
}

func TestCommand_Run_NoActiveEditor(t *testing.T) {
	sub := &mockSubmitter{}
	host := &fakeHost{noEditor: true}

	_, err := NewCommand(sub, domain.RegionEU, domain.TTLSevenDays).Run(context.Background(), host)

	assert.ErrorIs(t, err, domain.ErrNoActiveEditor)
	assert.Equal(t, []string{domain.NoEditorMessage}, host.errors)
	assert.Zero(t, host.promptCalls)
	sub.AssertNotCalled(t, "SubmitSecret")
}

func TestCommand_Run_EmptySelection(t *testing.T) {
	sub := &mockSubmitter{}
	host := &fakeHost{text: ""}

	_, err := NewCommand(sub, domain.RegionEU, domain.TTLSevenDays).Run(context.Background(), host)

	assert.ErrorIs(t, err, domain.ErrEmptySelection)
	assert.Equal(t, []string{domain.NoSelectionMessage}, host.errors)
	assert.Empty(t, host.progress)
	sub.AssertNotCalled(t, "SubmitSecret")
}

func TestCommand_Run_SubmissionErrors(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		message string
	}{
		{
			"transport",
			&domain.TransportError{StatusCode: 500},
			"Failed to create OneTimeSecret: API request failed with status 500",
		},
		{
			"service",
			&domain.ServiceError{},
			"Failed to create OneTimeSecret: API request was not successful",
		},
		{
			"validation",
			&domain.ValidationError{Stage: "response", Err: errors.New("record failed \"required\"")},
			"Failed to create OneTimeSecret: invalid response: record failed \"required\"",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sub := &mockSubmitter{}
			sub.On("SubmitSecret", mock.Anything, "text", "", domain.RegionEU, domain.TTLSevenDays).
				Return("", tc.err).Once()

			host := &fakeHost{text: "text", choose: domain.CopyURLAction}
			url, err := NewCommand(sub, domain.RegionEU, domain.TTLSevenDays).Run(context.Background(), host)

			assert.Empty(t, url)
			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, []string{tc.message}, host.errors)
			assert.Empty(t, host.infos)
			assert.Empty(t, host.clipboard)
			sub.AssertExpectations(t)
		})
	}
}

func TestCommand_Run_ClipboardFailure(t *testing.T) {
	sub := &mockSubmitter{}
	sub.On("SubmitSecret", mock.Anything, "text", "", domain.RegionEU, domain.TTLSevenDays).
		Return("https://eu.onetimesecret.com/secret/s1", nil).Once()

	host := &fakeHost{text: "text", choose: domain.CopyURLAction, clipErr: errors.New("no clipboard utility")}
	url, err := NewCommand(sub, domain.RegionEU, domain.TTLSevenDays).Run(context.Background(), host)

	require.Error(t, err)
	assert.Equal(t, "https://eu.onetimesecret.com/secret/s1", url, "created secret must not be lost")
	require.Len(t, host.errors, 1)
	assert.Equal(t, domain.CopyFailedPrefix+"copy to clipboard: no clipboard utility", host.errors[0])
	assert.NotContains(t, host.errors[0], domain.FailurePrefix)
	assert.Equal(t, []string{domain.CreatedMessage}, host.infos)
}

func TestCommand_Run_PromptFailure(t *testing.T) {
	sub := &mockSubmitter{}
	host := &fakeHost{text: "text", promptErr: errors.New("tty closed")}

	_, err := NewCommand(sub, domain.RegionEU, domain.TTLSevenDays).Run(context.Background(), host)

	require.Error(t, err)
	assert.Len(t, host.errors, 1)
	sub.AssertNotCalled(t, "SubmitSecret")
}
