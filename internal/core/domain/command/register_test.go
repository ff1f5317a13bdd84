package command

import (
	"ciesta/internal/core/domain"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegister_Respond(t *testing.T) {
	tests := []struct {
		name       string
		chatID     int64
		argument   string
		saveErr    error
		wantReply  string
		wantErr    bool
		wantHandle string
	}{
		{
			name:       "new user",
			chatID:     42,
			argument:   "newbie",
			wantReply:  fmt.Sprintf(registerAdded, "newbie"),
			wantHandle: "newbie",
		},
		{
			name:       "existing user renames",
			chatID:     2,
			argument:   " kenji ",
			wantReply:  fmt.Sprintf(registerUpdated, "kenji"),
			wantHandle: "kenji",
		},
		{
			name:      "handle taken by someone else",
			chatID:    42,
			argument:  "SUKI",
			wantReply: fmt.Sprintf(registerTaken, "SUKI"),
		},
		{
			name:      "handle too short",
			chatID:    42,
			argument:  "ab",
			wantReply: fmt.Sprintf(registerShort, domain.MinHandleLength),
		},
		{
			name:      "storage failure",
			chatID:    42,
			argument:  "newbie",
			saveErr:   errBoom,
			wantReply: registerFailed,
			wantErr:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			registry := newRegistry(t, &memStore{saveErr: tc.saveErr})
			mockSender := new(MockSender)
			cmd := NewRegister(registry, mockSender, "/register")

			msg := &domain.Message{ID: 1, ChatID: tc.chatID, Username: "someone", FirstName: "Some",
				Argument: tc.argument, HasArgument: true}

			mockSender.On("SendMessageReply", mock.Anything, msg, tc.wantReply).Return(2, nil)

			err := cmd.Respond(t.Context(), time.Second, msg)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			mockSender.AssertExpectations(t)

			if tc.wantHandle == "" {
				return
			}

			user, ok := registry.FindByIdentity(msg.Identity())
			require.True(t, ok)
			assert.Equal(t, tc.wantHandle, user.Handle)
			assert.Equal(t, "someone", user.ExternalHandle)
		})
	}
}

func TestRegister_Attributes(t *testing.T) {
	cmd := NewRegister(newRegistry(t, nil), new(MockSender), "/register")

	assert.Equal(t, "/register", cmd.GetCommand())
	assert.Equal(t, domain.LevelPublic, cmd.RequiredLevel())
	assert.Equal(t, domain.ArityRequired, cmd.Arity())
	assert.Equal(t, "Username can not be empty! Example: /register Ciesta", cmd.Usage())
}
