// Package sim implements the gene-drive inheritance engine and the
// discrete-generation population dynamics around it: nuclease cutting,
// resistance formation, homology-directed cassette copying, genotype
// fitness and fertility, mating, and per-generation census reporting.
package sim

import (
	"errors"
	"fmt"
)

// Config carries every drive-mode flag and rate constant for one run. It is
// constructed once at start-up, validated, and passed by reference into
// every component; nothing reads ambient globals. Env tags allow the whole
// configuration to be populated from the process environment.
type Config struct {
	// Target site geometry.
	NumGRNAs int `env:"NUM_GRNAS" envDefault:"4"`

	// Drive modes. Homing is the default; the TADS flags select the
	// non-homing modification/suppression variant and exclude homing.
	HomingDrive                       bool `env:"HOMING_DRIVE" envDefault:"true"`
	HaplolethalDrive                  bool `env:"HAPLOLETHAL_DRIVE" envDefault:"false"`
	RecessiveLethalDrive              bool `env:"RECESSIVE_LETHAL_DRIVE" envDefault:"false"`
	GeneDisruptionDrive               bool `env:"GENE_DISRUPTION_DRIVE" envDefault:"false"`
	RecessiveFemaleSterileSuppression bool `env:"RECESSIVE_FEMALE_STERILE_SUPPRESSION_DRIVE" envDefault:"false"`
	HaplolethalSuppression            bool `env:"HAPLOLETHAL_SUPPRESSION_DRIVE" envDefault:"false"`
	TADSModification                  bool `env:"TADS_MODIFICATION_DRIVE" envDefault:"false"`
	TADSAutosomalSuppression          bool `env:"TADS_AUTOSOMAL_SUPPRESSION_DRIVE" envDefault:"false"`
	XLinkedDrive                      bool `env:"X_LINKED_DRIVE" envDefault:"false"`
	MaleOnlyPromoter                  bool `env:"MALE_ONLY_PROMOTER" envDefault:"false"`

	// Cut and repair rates.
	GermlineResistanceCutRate     float64 `env:"GERMLINE_RESISTANCE_CUT_RATE" envDefault:"0.02"`
	LateGermlineResistanceCutRate float64 `env:"LATE_GERMLINE_RESISTANCE_CUT_RATE" envDefault:"0.99"`
	EmbryoResistanceCutRate       float64 `env:"EMBRYO_RESISTANCE_CUT_RATE" envDefault:"0.05"`
	HomingPhaseCutRate            float64 `env:"HOMING_PHASE_CUT_RATE" envDefault:"0.95"`
	BaselineHomingSuccessRate     float64 `env:"BASELINE_HOMING_SUCCESS_RATE" envDefault:"0.95"`
	HomingEdgeEffect              float64 `env:"HOMING_EDGE_EFFECT" envDefault:"0.055"`
	DoubleMismatchPenalty         float64 `env:"DOUBLE_MISMATCH_PENALTY" envDefault:"1.0"`
	PartialHDRRate                float64 `env:"PARTIAL_HDR_RATE" envDefault:"0.02"`
	PerOffsetPartialHDRRate       float64 `env:"PER_OFFSET_PARTIAL_HDR_RATE" envDefault:"0.01"`
	PartialHDRR1Rate              float64 `env:"PARTIAL_HDR_R1_RATE" envDefault:"0.1"`
	R1OccurrenceRate              float64 `env:"R1_OCCURRENCE_RATE" envDefault:"0.01"`

	// Nuclease saturation and activity variation across the gRNA span.
	GRNASaturationSimulated bool    `env:"GRNA_SATURATION_SIMULATED" envDefault:"true"`
	GlobalSaturationFactor  float64 `env:"GLOBAL_SATURATION_FACTOR" envDefault:"1.5"`
	GRNAActivityVariation   float64 `env:"GRNA_ACTIVITY_VARIATION" envDefault:"0.2"`
	HetMotherCasInheritance float64 `env:"HET_MOTHER_CAS_INHERITANCE" envDefault:"1.0"`

	// Genotype fitness.
	DriveFitnessValue               float64 `env:"DRIVE_FITNESS_VALUE" envDefault:"0.95"`
	R2FitnessValue                  float64 `env:"R2_FITNESS_VALUE" envDefault:"1.0"`
	GeneDisruptionFitnessMultiplier float64 `env:"GENE_DISRUPTION_FITNESS_MULTIPLIER" envDefault:"0.95"`
	FemaleSomaticFitnessValue       float64 `env:"FEMALE_SOMATIC_FITNESS_VALUE" envDefault:"1.0"`

	// Population dynamics.
	Capacity             int     `env:"CAPACITY" envDefault:"10000"`
	LowDensityGrowthRate float64 `env:"LOW_DENSITY_GROWTH_RATE" envDefault:"10"`
	MaxOffspring         int     `env:"MAX_OFFSPRING" envDefault:"50"`
	RateFemalesSurvive   float64 `env:"RATE_FEMALES_SURVIVE" envDefault:"0"`
	MaxMateAttempts      int     `env:"MAX_ATTEMPTS_TO_FIND_SUITABLE_MATE" envDefault:"10"`
	Generations          int     `env:"GENERATIONS" envDefault:"100"`

	// Release drop.
	DropSize         int     `env:"DROP_SIZE" envDefault:"1000"`
	DropGeneration   int     `env:"DROP_GENERATION" envDefault:"1"`
	DropMaleFraction float64 `env:"DROP_MALE_FRACTION" envDefault:"0.5"`
	HeterozygousDrop bool    `env:"HETEROZYGOUS_DROP" envDefault:"true"`

	// Cap for the TADS re-draw loop; exceeding it is a logic fault.
	RedrawCap int `env:"TADS_REDRAW_CAP" envDefault:"1000"`
}

// Homes reports whether the configured drive copies itself by
// homology-directed repair. The TADS variants never home.
func (c *Config) Homes() bool {
	return c.HomingDrive && !c.TADSModification && !c.TADSAutosomalSuppression
}

type rateField struct {
	name  string
	value float64
}

// Validate rejects configurations before any simulation step runs. All
// failures here are fatal at start-up.
func (c *Config) Validate() error {
	if c.NumGRNAs < 1 {
		return fmt.Errorf("NUM_GRNAS must be at least 1, got %d", c.NumGRNAs)
	}
	rates := []rateField{
		{"GERMLINE_RESISTANCE_CUT_RATE", c.GermlineResistanceCutRate},
		{"LATE_GERMLINE_RESISTANCE_CUT_RATE", c.LateGermlineResistanceCutRate},
		{"EMBRYO_RESISTANCE_CUT_RATE", c.EmbryoResistanceCutRate},
		{"HOMING_PHASE_CUT_RATE", c.HomingPhaseCutRate},
		{"BASELINE_HOMING_SUCCESS_RATE", c.BaselineHomingSuccessRate},
		{"DOUBLE_MISMATCH_PENALTY", c.DoubleMismatchPenalty},
		{"PARTIAL_HDR_RATE", c.PartialHDRRate},
		{"PER_OFFSET_PARTIAL_HDR_RATE", c.PerOffsetPartialHDRRate},
		{"PARTIAL_HDR_R1_RATE", c.PartialHDRR1Rate},
		{"R1_OCCURRENCE_RATE", c.R1OccurrenceRate},
		{"DRIVE_FITNESS_VALUE", c.DriveFitnessValue},
		{"R2_FITNESS_VALUE", c.R2FitnessValue},
		{"GENE_DISRUPTION_FITNESS_MULTIPLIER", c.GeneDisruptionFitnessMultiplier},
		{"FEMALE_SOMATIC_FITNESS_VALUE", c.FemaleSomaticFitnessValue},
		{"RATE_FEMALES_SURVIVE", c.RateFemalesSurvive},
		{"DROP_MALE_FRACTION", c.DropMaleFraction},
	}
	for _, r := range rates {
		if r.value < 0 || r.value > 1 {
			return fmt.Errorf("%s must be within [0,1], got %v", r.name, r.value)
		}
	}
	if c.HomingEdgeEffect < 0 {
		return fmt.Errorf("HOMING_EDGE_EFFECT must be non-negative, got %v", c.HomingEdgeEffect)
	}
	if c.GlobalSaturationFactor <= 1 {
		return fmt.Errorf("GLOBAL_SATURATION_FACTOR must exceed 1, got %v", c.GlobalSaturationFactor)
	}
	if c.GRNAActivityVariation < 0 || c.GRNAActivityVariation > 1 {
		return fmt.Errorf("GRNA_ACTIVITY_VARIATION must be within [0,1], got %v", c.GRNAActivityVariation)
	}
	if c.HetMotherCasInheritance < 0 {
		return fmt.Errorf("HET_MOTHER_CAS_INHERITANCE must be non-negative, got %v", c.HetMotherCasInheritance)
	}
	if c.Capacity < 1 {
		return fmt.Errorf("CAPACITY must be positive, got %d", c.Capacity)
	}
	if c.LowDensityGrowthRate <= 1 {
		return fmt.Errorf("LOW_DENSITY_GROWTH_RATE must exceed 1, got %v", c.LowDensityGrowthRate)
	}
	if c.MaxOffspring < 1 {
		return fmt.Errorf("MAX_OFFSPRING must be positive, got %d", c.MaxOffspring)
	}
	if c.MaxMateAttempts < 1 {
		return fmt.Errorf("MAX_ATTEMPTS_TO_FIND_SUITABLE_MATE must be positive, got %d", c.MaxMateAttempts)
	}
	if c.Generations < 1 {
		return fmt.Errorf("GENERATIONS must be positive, got %d", c.Generations)
	}
	if c.DropSize < 0 {
		return fmt.Errorf("DROP_SIZE must be non-negative, got %d", c.DropSize)
	}
	if c.RedrawCap < 1 {
		return fmt.Errorf("TADS_REDRAW_CAP must be positive, got %d", c.RedrawCap)
	}
	if err := c.validateModes(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateModes() error {
	tads := c.TADSModification || c.TADSAutosomalSuppression
	if tads && c.HomingDrive {
		return errors.New("TADS drives do not home: unset HOMING_DRIVE when a TADS mode is selected")
	}
	if c.TADSModification && c.TADSAutosomalSuppression {
		return errors.New("TADS_MODIFICATION_DRIVE and TADS_AUTOSOMAL_SUPPRESSION_DRIVE are mutually exclusive")
	}
	if c.HaplolethalDrive && c.RecessiveLethalDrive {
		return errors.New("HAPLOLETHAL_DRIVE and RECESSIVE_LETHAL_DRIVE are mutually exclusive")
	}
	if c.GeneDisruptionDrive && c.RecessiveFemaleSterileSuppression {
		return errors.New("GENE_DISRUPTION_DRIVE and RECESSIVE_FEMALE_STERILE_SUPPRESSION_DRIVE are mutually exclusive")
	}
	if c.HaplolethalSuppression && !c.HaplolethalDrive {
		return errors.New("HAPLOLETHAL_SUPPRESSION_DRIVE requires HAPLOLETHAL_DRIVE")
	}
	if !c.HomingDrive && !tads {
		return errors.New("select a drive mechanism: HOMING_DRIVE or a TADS mode")
	}
	return nil
}
