// Package device talks to a physical HDHomeRun tuner over its HTTP API.
package device

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/imroc/req/v3"
	"github.com/snowie2000/hdhomerun/global"
)

var ErrNoDevice = errors.New("device address is not set")

// DiscoverInfo is the subset of discover.json a tuner reports that we care about.
type DiscoverInfo struct {
	FriendlyName    string `json:"FriendlyName"`
	ModelNumber     string `json:"ModelNumber"`
	FirmwareName    string `json:"FirmwareName"`
	FirmwareVersion string `json:"FirmwareVersion"`
	DeviceID        string `json:"DeviceID"`
	BaseURL         string `json:"BaseURL"`
	LineupURL       string `json:"LineupURL"`
	TunerCount      int    `json:"TunerCount"`
}

// LineupEntry is one channel of a tuner lineup.json.
type LineupEntry struct {
	GuideNumber string `json:"GuideNumber"`
	GuideName   string `json:"GuideName"`
	URL         string `json:"URL"`
	HD          int    `json:"HD,omitempty"`
	Favorite    int    `json:"Favorite,omitempty"`
}

type Client struct {
	host string
	c    *req.Client
}

// Host strips any path a device id may carry and keeps host[:port].
func Host(deviceID string) string {
	host := strings.TrimSpace(deviceID)
	host = strings.TrimPrefix(strings.TrimPrefix(host, "http://"), "https://")
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	return host
}

// New builds a client for the tuner at deviceID. proxyURL may be empty.
func New(deviceID, proxyURL string) (*Client, error) {
	host := Host(deviceID)
	if host == "" {
		return nil, ErrNoDevice
	}
	client := req.C().
		SetTimeout(global.HttpClientTimeout).
		SetBaseURL("http://"+host).
		SetUserAgent("hdhomerun-proxy")
	if proxyURL != "" {
		client.SetDial(func(ctx context.Context, network, addr string) (net.Conn, error) {
			return global.TransportWithProxy(proxyURL).Dial(network, addr)
		})
	}
	return &Client{host: host, c: client}, nil
}

func (d *Client) Host() string {
	return d.host
}

func (d *Client) Discover(ctx context.Context) (*DiscoverInfo, error) {
	var info DiscoverInfo
	if err := d.getJSON(ctx, "/discover.json", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (d *Client) Lineup(ctx context.Context) ([]LineupEntry, error) {
	var lineup []LineupEntry
	if err := d.getJSON(ctx, "/lineup.json", &lineup); err != nil {
		return nil, err
	}
	return lineup, nil
}

func (d *Client) getJSON(ctx context.Context, path string, v any) error {
	resp, err := d.c.R().SetContext(ctx).SetSuccessResult(v).Get(path)
	if err != nil {
		return fmt.Errorf("%s%s: %w", d.host, path, err)
	}
	if !resp.IsSuccessState() {
		return fmt.Errorf("%s%s: unexpected status %s", d.host, path, resp.Status)
	}
	return nil
}
