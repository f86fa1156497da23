package j1587

// Build composes a complete, checksum-terminated J1708 frame from a MID and
// an ordered parameter list. It is the inverse of ParseMessage and exists
// primarily so tests (and any consumer that needs to synthesize frames) do
// not have to hand-compute checksums.
func Build(mid byte, params []Parameter) []byte {
	body := []byte{mid}
	for _, p := range params {
		body = append(body, p.PID)
		if _, needsPrefix := lengthFor(p.PID); needsPrefix {
			body = append(body, byte(len(p.Data)))
		}
		body = append(body, p.Data...)
	}
	return append(body, Checksum(body))
}
