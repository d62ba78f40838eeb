// utils
package global

import (
	"crypto/tls"
	"log"
	"net"
	"net/http"
	"net/url"

	httpproxy "github.com/fopina/net-proxy-httpconnect/proxy"
	"golang.org/x/net/proxy"
)

func IsValidURL(u string) bool {
	_, err := url.ParseRequestURI(u)
	if err == nil {
		uu, err := url.Parse(u)
		return err == nil && uu.Scheme != "" && uu.Host != ""
	}
	return false
}

func TransportWithProxy(proxyUrl string) *http.Transport {
	d := &net.Dialer{
		Timeout: HttpClientTimeout,
	}
	tr := &http.Transport{
		Dial:            d.Dial,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
	if proxyUrl != "" {
		if u, err := url.Parse(proxyUrl); err == nil {
			if p, e := proxy.FromURL(u, d); e == nil {
				tr.Dial = p.Dial
			} else {
				log.Println("Proxy setup error:", e)
			}
		}
	}
	return tr
}

func init() {
	// lets proxy.FromURL understand http:// and https:// CONNECT proxies
	httpproxy.RegisterSchemes()
}
