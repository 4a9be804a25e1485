// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"net"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/miekg/dns"

	"github.com/bitmark-inc/fractiond/account"
	"github.com/bitmark-inc/fractiond/fault"
)

// TXT record prefix naming the owner account
const proofPrefix = "fractiond-verification="

const (
	resolvConf     = "/etc/resolv.conf"
	maximumServers = 3
	lookupTimeout  = 5 * time.Second
)

// Verifier - ownership proof check before registration
type Verifier interface {
	Verify(domain string, owner account.Address) error
}

// LookupFunc - fetch the TXT strings of a name
type LookupFunc func(name string) ([]string, error)

// DNSVerifier - expects a TXT record "fractiond-verification=<owner>"
type DNSVerifier struct {
	log    *logger.L
	lookup LookupFunc
}

// NewDNSVerifier - nil lookup queries the servers from /etc/resolv.conf
func NewDNSVerifier(lookup LookupFunc) *DNSVerifier {
	log := logger.New("verifier")
	if nil == lookup {
		lookup = func(name string) ([]string, error) {
			return lookupTXT(log, name)
		}
	}
	return &DNSVerifier{
		log:    log,
		lookup: lookup,
	}
}

// ProofText - the TXT record an owner publishes before registering
func ProofText(owner account.Address) string {
	return proofPrefix + owner.String()
}

// Verify - succeed if any TXT record names the owner
func (v *DNSVerifier) Verify(domain string, owner account.Address) error {
	txts, err := v.lookup(domain)
	if nil != err {
		v.log.Debugf("domain: %q  lookup error: %s", domain, err)
		return fault.ProofNotFound
	}

	for _, txt := range txts {
		if !strings.HasPrefix(txt, proofPrefix) {
			continue
		}
		a, err := account.FromBase58(strings.TrimSpace(strings.TrimPrefix(txt, proofPrefix)))
		if nil != err {
			v.log.Debugf("domain: %q  bad proof: %q  error: %s", domain, txt, err)
			continue
		}
		if a == owner {
			return nil
		}
	}
	return fault.ProofNotFound
}

// query each configured name server in turn until one answers
func lookupTXT(log *logger.L, domain string) ([]string, error) {
	conf, err := dns.ClientConfigFromFile(resolvConf)
	if nil != err {
		log.Warnf("reading %s error: %s", resolvConf, err)
		return nil, err
	}

	servers := conf.Servers
	if len(servers) > maximumServers {
		servers = servers[:maximumServers]
	}

	c := dns.Client{
		Timeout: lookupTimeout,
	}
	msg := dns.Msg{}
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeTXT)

	lastErr := error(fault.ProofNotFound)
	for _, server := range servers {
		s := net.JoinHostPort(server, conf.Port)
		r, _, err := c.Exchange(&msg, s)
		if nil != err {
			log.Debugf("exchange with dns server %q error: %s", s, err)
			lastErr = err
			continue
		}

		txts := make([]string, 0, len(r.Answer))
		for _, rr := range r.Answer {
			if t, ok := rr.(*dns.TXT); ok {
				txts = append(txts, strings.Join(t.Txt, ""))
			}
		}
		return txts, nil
	}
	return nil, lastErr
}
