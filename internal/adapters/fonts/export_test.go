package fonts

var (
	SFNTToWOFF = sfntToWOFF
	WOFFToSFNT = woffToSFNT
)
