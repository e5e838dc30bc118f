package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"visionchat/internal/service/mocks"
	"visionchat/internal/web"

	"go.uber.org/mock/gomock"
)

func testDeps(t *testing.T, ctrl *gomock.Controller) *Deps {
	t.Helper()
	return &Deps{
		ChatService: mocks.NewMockChatService(ctrl),
		Pages: &web.Pages{
			Index:   "<h1>Vision Chat</h1>",
			About:   "<h1>About</h1>",
			Contact: "<h1>Contact</h1>",
		},
	}
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(testDeps(t, ctrl))
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(testDeps(t, ctrl))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "GET root serves HTML",
			method:     http.MethodGet,
			path:       "/",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET about serves HTML",
			method:     http.MethodGet,
			path:       "/about",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET contact serves HTML",
			method:     http.MethodGet,
			path:       "/contact",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET health",
			method:     http.MethodGet,
			path:       "/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST /chat exists",
			method:     http.MethodPost,
			path:       "/chat",
			wantStatus: http.StatusBadRequest, // No JSON body, but the route exists
		},
		{
			name:       "GET /chat method not allowed",
			method:     http.MethodGet,
			path:       "/chat",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_StaticPageContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(testDeps(t, ctrl))

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(w.Body.String(), "<h1>About</h1>") {
		t.Errorf("body = %q, want about page HTML", w.Body.String())
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(testDeps(t, ctrl))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set on responses")
	}
}
