// Package webauthntest provides a software authenticator that answers real
// WebAuthn ceremonies, for use in tests.
package webauthntest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

const (
	flagUserPresent  = 0x01
	flagUserVerified = 0x04
	flagAttestedData = 0x40

	coseKeyTypeEC2 = 2
	coseAlgES256   = -7
	coseCurveP256  = 1
)

var b64 = base64.RawURLEncoding

// Authenticator holds one P-256 credential. RPID and Origin are what it
// claims in every response; tests change them to forge mismatches.
type Authenticator struct {
	RPID         string
	Origin       string
	CredentialID []byte

	key *ecdsa.PrivateKey
	enc cbor.EncMode
}

func New(rpID, origin string) (*Authenticator, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	enc, err := cbor.CTAP2EncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	id := make([]byte, 16)
	if _, err := rand.Read(id); err != nil {
		return nil, err
	}
	return &Authenticator{RPID: rpID, Origin: origin, CredentialID: id, key: key, enc: enc}, nil
}

type options struct {
	Challenge string `json:"challenge"`
}

type credentialJSON struct {
	ID       string            `json:"id"`
	RawID    string            `json:"rawId"`
	Type     string            `json:"type"`
	Response map[string]string `json:"response"`
}

// Attest answers creation options with a "none" attestation reporting
// signCount.
func (a *Authenticator) Attest(creationOptions []byte, signCount uint32) (json.RawMessage, error) {
	clientData, err := a.clientData("webauthn.create", creationOptions)
	if err != nil {
		return nil, err
	}
	pub, err := a.coseKey()
	if err != nil {
		return nil, err
	}

	authData := a.authData(flagUserPresent|flagUserVerified|flagAttestedData, signCount)
	authData = append(authData, make([]byte, 16)...) // zero AAGUID
	authData = binary.BigEndian.AppendUint16(authData, uint16(len(a.CredentialID)))
	authData = append(authData, a.CredentialID...)
	authData = append(authData, pub...)

	attObj, err := a.enc.Marshal(map[string]any{
		"fmt":      "none",
		"attStmt":  map[string]any{},
		"authData": authData,
	})
	if err != nil {
		return nil, fmt.Errorf("encode attestation object: %w", err)
	}

	return a.credential(map[string]string{
		"clientDataJSON":    b64.EncodeToString(clientData),
		"attestationObject": b64.EncodeToString(attObj),
	})
}

// Assert answers request options with an ES256 assertion reporting signCount.
func (a *Authenticator) Assert(requestOptions []byte, signCount uint32) (json.RawMessage, error) {
	clientData, err := a.clientData("webauthn.get", requestOptions)
	if err != nil {
		return nil, err
	}
	authData := a.authData(flagUserPresent|flagUserVerified, signCount)

	clientHash := sha256.Sum256(clientData)
	digest := sha256.Sum256(append(append([]byte{}, authData...), clientHash[:]...))
	sig, err := ecdsa.SignASN1(rand.Reader, a.key, digest[:])
	if err != nil {
		return nil, fmt.Errorf("sign assertion: %w", err)
	}

	return a.credential(map[string]string{
		"clientDataJSON":    b64.EncodeToString(clientData),
		"authenticatorData": b64.EncodeToString(authData),
		"signature":         b64.EncodeToString(sig),
	})
}

func (a *Authenticator) clientData(ceremony string, rawOptions []byte) ([]byte, error) {
	var opts options
	if err := json.Unmarshal(rawOptions, &opts); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	return json.Marshal(map[string]any{
		"type":        ceremony,
		"challenge":   opts.Challenge,
		"origin":      a.Origin,
		"crossOrigin": false,
	})
}

func (a *Authenticator) authData(flags byte, signCount uint32) []byte {
	rpHash := sha256.Sum256([]byte(a.RPID))
	out := append([]byte{}, rpHash[:]...)
	out = append(out, flags)
	return binary.BigEndian.AppendUint32(out, signCount)
}

func (a *Authenticator) coseKey() ([]byte, error) {
	pub, err := a.key.PublicKey.ECDH()
	if err != nil {
		return nil, err
	}
	raw := pub.Bytes() // 0x04 || X || Y
	return a.enc.Marshal(map[int]any{
		1:  coseKeyTypeEC2,
		3:  coseAlgES256,
		-1: coseCurveP256,
		-2: raw[1:33],
		-3: raw[33:65],
	})
}

func (a *Authenticator) credential(response map[string]string) (json.RawMessage, error) {
	id := b64.EncodeToString(a.CredentialID)
	return json.Marshal(credentialJSON{ID: id, RawID: id, Type: "public-key", Response: response})
}
