package command

import (
	"ciesta/internal/core/domain"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContent struct {
	mock.Mock
}

func (m *MockContent) TopHeadlines(ctx context.Context) ([]domain.Article, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *MockContent) Current(ctx context.Context, city string) (domain.Weather, error) {
	args := m.Called(ctx, city)
	return args.Get(0).(domain.Weather), args.Error(1)
}

func (m *MockContent) PublicIP(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockContent) Random(ctx context.Context, collection string) (string, error) {
	args := m.Called(ctx, collection)
	return args.String(0), args.Error(1)
}

func TestGetIP_Respond(t *testing.T) {
	tests := []struct {
		name      string
		ip        string
		err       error
		wantReply string
	}{
		{name: "success", ip: "203.0.113.7", wantReply: "Your IP: 203.0.113.7"},
		{name: "lookup fails", err: errBoom, wantReply: ipFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			content := new(MockContent)
			mockSender := new(MockSender)
			cmd := NewGetIP(content, mockSender, "/getip")
			msg := &domain.Message{ChatID: 2}

			content.On("PublicIP", mock.Anything).Return(tc.ip, tc.err)
			mockSender.On("SendMessageReply", mock.Anything, msg, tc.wantReply).Return(1, nil)

			require.NoError(t, cmd.Respond(t.Context(), time.Second, msg))
			mockSender.AssertExpectations(t)
		})
	}
}

func TestWeather_Respond(t *testing.T) {
	report := domain.Weather{
		City: "Bandung", Region: "West Java", Country: "Indonesia", TimeZone: "Asia/Jakarta",
		LocalTime: "2025-03-14 16:30", TempC: 24.5, TempF: 76.1, Humidity: 80, WindKph: 7.2,
		WindDir: "WSW", Condition: "Light rain", ConditionIcon: "https://cdn.example.com/rain.png",
	}

	tests := []struct {
		name     string
		argument string
		wantCity string
	}{
		{name: "explicit city", argument: "Bandung", wantCity: "Bandung"},
		{name: "default city", argument: "", wantCity: "Jakarta"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			content := new(MockContent)
			mockSender := new(MockSender)
			imageSender := new(MockImageSender)
			cmd := NewWeather(content, mockSender, imageSender, "Jakarta", "/weather")
			msg := &domain.Message{ChatID: 3, Argument: tc.argument}

			content.On("Current", mock.Anything, tc.wantCity).Return(report, nil)
			mockSender.On("Send", mock.Anything, "3", mock.MatchedBy(func(text string) bool {
				return strings.HasPrefix(text, "🌦️ *Weather for Bandung, Indonesia*") &&
					strings.Contains(text, "24.5°C / 76.1°F") &&
					strings.Contains(text, "💧 Humidity: 80%")
			}), domain.Markdown).Return(nil)
			imageSender.On("SendImageURL", mock.Anything, "3", report.ConditionIcon).Return(nil)

			require.NoError(t, cmd.Respond(t.Context(), time.Second, msg))
			content.AssertExpectations(t)
			mockSender.AssertExpectations(t)
			imageSender.AssertExpectations(t)
		})
	}
}

func TestWeather_LookupFails(t *testing.T) {
	content := new(MockContent)
	mockSender := new(MockSender)
	cmd := NewWeather(content, mockSender, new(MockImageSender), "Jakarta", "/weather")
	msg := &domain.Message{ChatID: 3, Argument: "Atlantis"}

	content.On("Current", mock.Anything, "Atlantis").Return(domain.Weather{}, errBoom)
	mockSender.On("SendMessageReply", mock.Anything, msg, fmt.Sprintf(weatherFailed, "Atlantis")).Return(1, nil)

	require.NoError(t, cmd.Respond(t.Context(), time.Second, msg))
	mockSender.AssertExpectations(t)
	assert.Equal(t, domain.ArityOptional, cmd.Arity())
}

func TestTopNews_Respond(t *testing.T) {
	articles := []domain.Article{
		{Title: "First", Description: "one", URL: "https://bbc.example/1"},
		{Title: "Second_story", Description: "two", URL: "https://bbc.example/2"},
	}

	content := new(MockContent)
	mockSender := new(MockSender)
	cmd := NewTopNews(content, mockSender, "/topnews")
	msg := &domain.Message{ChatID: 1}

	content.On("TopHeadlines", mock.Anything).Return(articles, nil)
	mockSender.On("Send", mock.Anything, "1", fmt.Sprintf(newsHeader, 2), domain.Markdown).Return(nil).Once()
	mockSender.On("Send", mock.Anything, "1", "1. *First*\none\nURL: https://bbc.example/1", domain.Markdown).
		Return(nil).Once()
	mockSender.On("Send", mock.Anything, "1", "2. *Second\\_story*\ntwo\nURL: https://bbc.example/2", domain.Markdown).
		Return(nil).Once()

	require.NoError(t, cmd.Respond(t.Context(), time.Second, msg))
	mockSender.AssertExpectations(t)
}

func TestTopNews_Empty(t *testing.T) {
	content := new(MockContent)
	mockSender := new(MockSender)
	cmd := NewTopNews(content, mockSender, "/topnews")
	msg := &domain.Message{ChatID: 1}

	content.On("TopHeadlines", mock.Anything).Return([]domain.Article{}, nil)
	mockSender.On("SendMessageReply", mock.Anything, msg, newsEmpty).Return(1, nil)

	require.NoError(t, cmd.Respond(t.Context(), time.Second, msg))
	mockSender.AssertExpectations(t)
}

func TestImage_Respond(t *testing.T) {
	imageSender := new(MockImageSender)
	cmd := NewImage("https://img.example/eunsoo.jpg", imageSender, new(MockSender), "/eunsoo")
	msg := &domain.Message{ChatID: 3}

	imageSender.On("SendImageURL", mock.Anything, "3", "https://img.example/eunsoo.jpg").Return(nil)

	require.NoError(t, cmd.Respond(t.Context(), time.Second, msg))
	imageSender.AssertExpectations(t)
	assert.Equal(t, domain.LevelPremium, cmd.RequiredLevel())
}

func TestRandomImage_Respond(t *testing.T) {
	tests := []struct {
		name    string
		pickErr error
		sendErr error
		wantErr bool
	}{
		{name: "success"},
		{name: "picker fails", pickErr: errBoom, wantErr: true},
		{name: "sender fails", sendErr: errBoom, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			content := new(MockContent)
			imageSender := new(MockImageSender)
			cmd := NewRandomImage("waifu", content, imageSender, new(MockSender), "/randomwaifu")
			msg := &domain.Message{ChatID: 3}

			content.On("Random", mock.Anything, "waifu").Return("https://img.example/w.png", tc.pickErr)
			imageSender.On("SendImageURL", mock.Anything, "3", "https://img.example/w.png").Return(tc.sendErr).Maybe()

			err := cmd.Respond(t.Context(), time.Second, msg)
			if tc.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			imageSender.AssertExpectations(t)
		})
	}
}

func TestDebug_Respond(t *testing.T) {
	mockSender := new(MockSender)
	cmd := NewDebug(newRegistry(t, nil), mockSender, time.Now().Add(-time.Minute), "/debug")
	msg := &domain.Message{ID: 123, ChatID: 1}

	mockSender.On("SendMessageReply", mock.Anything, msg, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "users: 3 (premium: 1, owners: 1)") &&
			strings.Contains(text, "allocated mem:") &&
			strings.Contains(text, "goroutines:") &&
			strings.Contains(text, "compiled with")
	})).Return(1, nil)

	require.NoError(t, cmd.Respond(t.Context(), time.Second, msg))
	mockSender.AssertExpectations(t)
	assert.Equal(t, domain.LevelOwner, cmd.RequiredLevel())
}
