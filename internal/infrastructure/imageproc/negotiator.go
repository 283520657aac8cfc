package imageproc

// ChooseFormat picks the output encoding for a single upload. Transparent
// sources go to webp, everything else to jpeg. Unreadable input defaults to
// jpeg; validation has already happened upstream.
func ChooseFormat(buf []byte) Format {
	info, err := Inspect(buf)
	if err != nil {
		return FormatJPEG
	}

	if info.HasAlpha {
		return FormatWebP
	}

	return FormatJPEG
}
