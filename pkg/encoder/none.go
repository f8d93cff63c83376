package encoder

// None writes no descriptor. Only the sheet textures are persisted.
type None struct{}

func (None) Encode(PackageInfo) (Descriptor, bool, error) {
	return Descriptor{}, false, nil
}

func (None) EncodeMultiple([]PackageInfo) (MultiDescriptor, bool, error) {
	return MultiDescriptor{}, false, nil
}
