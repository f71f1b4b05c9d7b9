package stealthaddr

// StealthSend computes the sender-side derivation: given a freshly sampled
// ephemeral secret e and the recipient's scan pubkey Q and spend pubkey R,
// it returns the shared secret c and the one-time payment pubkey R' = R +
// c*G. The caller is expected to publish e*G (the ephemeral pubkey)
// alongside the payment to R'; c may be discarded once sent, since the
// receiver reconstructs it independently via StealthScan.
func StealthSend(e Scalar, scanPubkey, spendPubkey Point) (shared Scalar, oneTimePubkey Point, err error) {
	s, err := PointMul(scanPubkey, e)
	if err != nil {
		return Scalar{}, Point{}, err
	}
	c := sharedSecretFromPoint(s)
	rPrime, err := derivedOneTimePubkey(spendPubkey, c)
	if err != nil {
		return Scalar{}, Point{}, err
	}
	return c, rPrime, nil
}

// StealthScan computes the candidate one-time pubkey for an incoming
// payment: scanSecret is the receiver's scan privkey d, ephemPubkey is the
// sender-published P = e*G, and spendPubkey is the receiver's own spend
// pubkey R. The shared secret is reconstructed internally but not returned.
// By ECDH symmetry, d*P == e*Q, so the result equals the R' that
// StealthSend computed for the same payment.
func StealthScan(scanSecret Scalar, ephemPubkey, spendPubkey Point) (Point, error) {
	s, err := PointMul(ephemPubkey, scanSecret)
	if err != nil {
		return Point{}, err
	}
	c := sharedSecretFromPoint(s)
	return derivedOneTimePubkey(spendPubkey, c)
}

// StealthSpend derives the one-time private key that authorizes a spend of
// a payment recognized by StealthScan: k = (f + H(d*P)) mod n.
func StealthSpend(scanSecret Scalar, ephemPubkey Point, spendSecret Scalar) (Scalar, error) {
	s, err := PointMul(ephemPubkey, scanSecret)
	if err != nil {
		return Scalar{}, err
	}
	c := sharedSecretFromPoint(s)
	return ScalarAddModN(spendSecret, c)
}

// SharedToSpend derives the one-time private key from an already-computed
// shared secret c, skipping the ECDH step. Equivalent to StealthSpend when
// c has been cached by a scanner.
func SharedToSpend(shared, spendSecret Scalar) (Scalar, error) {
	return ScalarAddModN(spendSecret, shared)
}

// sharedSecretFromPoint computes c = H(encode_compressed(p)), reinterpreted
// as a Scalar.
func sharedSecretFromPoint(p Point) Scalar {
	enc := EncodeCompressed(p)
	return Scalar(Sha256(enc[:]))
}

// derivedOneTimePubkey computes R' = R + c*G.
func derivedOneTimePubkey(spendPubkey Point, c Scalar) (Point, error) {
	cG, err := BaseMul(c)
	if err != nil {
		return Point{}, err
	}
	return PointAdd(spendPubkey, cG)
}

// StealthAddress is a scan/spend keypair: the published half (ScanPubkey,
// SpendPubkey, Options) that observers and senders see, and the private
// half (ScanSecret, SpendSecret) known only to the owning wallet.
type StealthAddress struct {
	Options     byte
	ScanPubkey  Point
	SpendPubkey Point
	ScanSecret  *Scalar
	SpendSecret *Scalar
	Label       string
}

// GenerateStealthAddress samples a fresh scan/spend keypair.
func GenerateStealthAddress() (*StealthAddress, error) {
	d, err := RandomScalar()
	if err != nil {
		return nil, err
	}
	f, err := RandomScalar()
	if err != nil {
		d.Zero()
		return nil, err
	}
	q, err := BaseMul(d)
	if err != nil {
		d.Zero()
		f.Zero()
		return nil, err
	}
	r, err := BaseMul(f)
	if err != nil {
		d.Zero()
		f.Zero()
		return nil, err
	}
	return &StealthAddress{
		ScanPubkey:  q,
		SpendPubkey: r,
		ScanSecret:  &d,
		SpendSecret: &f,
	}, nil
}

// Zeroize overwrites both secret halves, if present. Safe to call more than
// once or on an address with no secrets.
func (a *StealthAddress) Zeroize() {
	if a.ScanSecret != nil {
		a.ScanSecret.Zero()
	}
	if a.SpendSecret != nil {
		a.SpendSecret.Zero()
	}
}
