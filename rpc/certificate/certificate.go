// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package certificate - TLS key pairs for the RPC listener
package certificate

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/fractiond/fault"
)

// lifetime of a generated certificate
const validity = 10 * 365 * 24 * time.Hour

// Get - load a certificate and key from files and return the TLS
// configuration with the certificate fingerprint
func Get(log *logger.L, name string, certificateFileName string, keyFileName string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.LoadX509KeyPair(certificateFileName, keyFileName)
	if nil != err {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
	}

	fin = Fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}

// Generate - create a self-signed certificate and its private key
//
// neither file may exist beforehand
func Generate(name string, certificateFileName string, keyFileName string, extraHosts []string) error {
	if exists(certificateFileName) {
		return fault.CertificateFileAlreadyExists
	}
	if exists(keyFileName) {
		return fault.KeyFileAlreadyExists
	}

	org := "fractiond self signed cert for: " + name
	validUntil := time.Now().Add(validity)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, 0 != len(extraHosts), extraHosts)
	if nil != err {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0o666); nil != err {
		return err
	}

	if err = ioutil.WriteFile(keyFileName, key, 0o600); nil != err {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}

// Fingerprint - compute the fingerprint of a DER certificate
//
// FreeBSD: openssl x509 -outform DER -in rpc.crt | sha3sum -a 256
func Fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}

func exists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
