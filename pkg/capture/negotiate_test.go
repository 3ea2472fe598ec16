package capture

import (
	"errors"
	"testing"

	"github.com/user/teapotcast/pkg/mocks"
	"github.com/user/teapotcast/pkg/ports"
)

func TestOffers(t *testing.T) {
	offers := Offers(
		[]ports.PixelFormat{ports.FormatBGRA, ports.FormatRGBA},
		[]ports.Dimension{{Width: 640, Height: 480}, {Width: 0, Height: 10}, {Width: 320, Height: 240}},
		60,
	)

	want := []ports.Capability{
		{Format: ports.FormatBGRA, Width: 640, Height: 480, FrameRate: 60},
		{Format: ports.FormatRGBA, Width: 640, Height: 480, FrameRate: 60},
		{Format: ports.FormatBGRA, Width: 320, Height: 240, FrameRate: 60},
		{Format: ports.FormatRGBA, Width: 320, Height: 240, FrameRate: 60},
	}
	if len(offers) != len(want) {
		t.Fatalf("expected %d offers, got %d", len(want), len(offers))
	}
	for i := range want {
		if offers[i] != want[i] {
			t.Errorf("offer %d: expected %s, got %s", i, want[i], offers[i])
		}
	}
}

func TestNegotiate(t *testing.T) {
	offers := Offers(
		[]ports.PixelFormat{ports.FormatBGRA, ports.FormatRGBA},
		[]ports.Dimension{{Width: 1280, Height: 720}, {Width: 640, Height: 480}},
		60,
	)

	tests := []struct {
		name    string
		caps    ports.SinkCapabilities
		want    ports.Capability
		wantErr error
	}{
		{
			name: "accepts anything",
			caps: ports.SinkCapabilities{},
			want: offers[0],
		},
		{
			name: "format restricted",
			caps: ports.SinkCapabilities{Formats: []ports.PixelFormat{ports.FormatRGBA}},
			want: ports.Capability{Format: ports.FormatRGBA, Width: 1280, Height: 720, FrameRate: 60},
		},
		{
			name: "resolution restricted",
			caps: ports.SinkCapabilities{Resolutions: []ports.Dimension{{Width: 640, Height: 480}}},
			want: ports.Capability{Format: ports.FormatBGRA, Width: 640, Height: 480, FrameRate: 60},
		},
		{
			name:    "no common format",
			caps:    ports.SinkCapabilities{Formats: []ports.PixelFormat{ports.FormatARGB}},
			wantErr: ports.ErrSinkRejected,
		},
		{
			name: "frame rate within limit",
			caps: ports.SinkCapabilities{MaxFrameRate: 60},
			want: offers[0],
		},
		{
			name:    "frame rate above limit",
			caps:    ports.SinkCapabilities{MaxFrameRate: 30},
			wantErr: ports.ErrSinkRejected,
		},
		{
			name:    "no common resolution",
			caps:    ports.SinkCapabilities{Resolutions: []ports.Dimension{{Width: 1920, Height: 1080}}},
			wantErr: ports.ErrSinkRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := mocks.NewFrameSink()
			caps := tt.caps
			sink.CapabilitiesFunc = func() ports.SinkCapabilities { return caps }

			got, err := Negotiate(offers, sink)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
			if sink.CapsCalls != 1 {
				t.Errorf("expected capabilities to be queried once, got %d", sink.CapsCalls)
			}
		})
	}
}

func TestNegotiate_NoOffers(t *testing.T) {
	_, err := Negotiate(nil, mocks.NewFrameSink())
	if !errors.Is(err, ports.ErrSinkRejected) {
		t.Errorf("expected ErrSinkRejected, got %v", err)
	}
}
