package beatmap

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the fields a playable beatmap cannot do without and the
// documented ranges of the difficulty scalars. Parsing never calls this;
// it is for callers that want to reject incomplete maps.
func (b *Beatmap) Validate() error {
	if err := validation.ValidateStruct(&b.General,
		validation.Field(&b.General.AudioFilename, validation.Required),
		validation.Field(&b.General.Mode, validation.Min(ModeOsu), validation.Max(ModeMania)),
	); err != nil {
		return err
	}
	if err := validation.ValidateStruct(&b.Metadata,
		validation.Field(&b.Metadata.Title, validation.Required.When(b.Metadata.TitleUnicode == "")),
		validation.Field(&b.Metadata.Artist, validation.Required.When(b.Metadata.ArtistUnicode == "")),
	); err != nil {
		return err
	}
	return validation.ValidateStruct(&b.Difficulty,
		validation.Field(&b.Difficulty.HPDrainRate, validation.Min(0.0), validation.Max(10.0)),
		validation.Field(&b.Difficulty.OverallDifficulty, validation.Min(0.0), validation.Max(10.0)),
		validation.Field(&b.Difficulty.ApproachRate, validation.Min(0.0), validation.Max(10.0)),
		validation.Field(&b.Difficulty.SliderMultiplier, validation.Min(0.4), validation.Max(3.6)),
		validation.Field(&b.Difficulty.SliderTickRate, validation.Min(0.5), validation.Max(8.0)),
	)
}
