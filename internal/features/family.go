package features

import (
	"fmt"

	"EPI_monitor/internal/pipeline"
)

// Family семейство сенсоров носимого устройства
type Family int

const (
	// FamilyACC трехосевой акселерометр
	FamilyACC Family = iota
	// FamilyEDA электродермальная активность
	FamilyEDA
	// FamilyHR частота сердечных сокращений
	FamilyHR
	// FamilyTemp температура кожи
	FamilyTemp
)

// String возвращает имя семейства
func (f Family) String() string {
	switch f {
	case FamilyACC:
		return "acc"
	case FamilyEDA:
		return "eda"
	case FamilyHR:
		return "hr"
	case FamilyTemp:
		return "temp"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// SpectralDefault сообщает, получает ли семейство частотные признаки в
// конфигурации по умолчанию
func (f Family) SpectralDefault() bool {
	return f == FamilyACC || f == FamilyEDA
}

// SubChannels возвращает подканалы семейства
func (f Family) SubChannels() []string {
	if f == FamilyACC {
		return []string{"x", "y", "z"}
	}
	return []string{""}
}

// ParseFamily разбирает имя семейства из конфигурации или MQTT-топика
func ParseFamily(name string) (Family, error) {
	switch name {
	case "acc":
		return FamilyACC, nil
	case "eda":
		return FamilyEDA, nil
	case "hr":
		return FamilyHR, nil
	case "temp":
		return FamilyTemp, nil
	default:
		return 0, fmt.Errorf("%w: неизвестное семейство сенсоров %q", pipeline.ErrConfiguration, name)
	}
}

// Families перечисляет все семейства в фиксированном порядке
func Families() []Family {
	return []Family{FamilyACC, FamilyEDA, FamilyHR, FamilyTemp}
}

// ChannelSpec описывает один канал ряда: семейство, подканал и признак
// частотной пригодности
type ChannelSpec struct {
	Family   Family `json:"family"`
	Sub      string `json:"sub"`
	Spectral bool   `json:"spectral"`
}

// Name возвращает имя канала вида acc_x или eda
func (s ChannelSpec) Name() string {
	if s.Sub == "" {
		return s.Family.String()
	}
	return s.Family.String() + "_" + s.Sub
}

// ChannelConfig фиксирует состав и порядок каналов ряда. Порядок каналов
// определяет порядок признаков во всех векторах конвейера.
type ChannelConfig []ChannelSpec

// DefaultChannelConfig возвращает конфигурацию браслета: акселерометр по
// трем осям, EDA, пульс и температура; частотные признаки у acc и eda
func DefaultChannelConfig() ChannelConfig {
	var cfg ChannelConfig
	for _, f := range Families() {
		for _, sub := range f.SubChannels() {
			cfg = append(cfg, ChannelSpec{Family: f, Sub: sub, Spectral: f.SpectralDefault()})
		}
	}
	return cfg
}

// ChannelConfigWithSpectral строит конфигурацию по умолчанию, но частотные
// признаки получают только перечисленные семейства
func ChannelConfigWithSpectral(eligible ...Family) ChannelConfig {
	set := make(map[Family]bool, len(eligible))
	for _, f := range eligible {
		set[f] = true
	}
	var cfg ChannelConfig
	for _, f := range Families() {
		for _, sub := range f.SubChannels() {
			cfg = append(cfg, ChannelSpec{Family: f, Sub: sub, Spectral: set[f]})
		}
	}
	return cfg
}

// Validate проверяет конфигурацию каналов
func (cc ChannelConfig) Validate() error {
	if len(cc) == 0 {
		return fmt.Errorf("%w: конфигурация каналов пуста", pipeline.ErrConfiguration)
	}
	seen := make(map[string]bool, len(cc))
	for _, s := range cc {
		name := s.Name()
		if seen[name] {
			return fmt.Errorf("%w: канал %s объявлен дважды", pipeline.ErrConfiguration, name)
		}
		seen[name] = true
	}
	return nil
}

// ChannelNames возвращает имена каналов в порядке конфигурации
func (cc ChannelConfig) ChannelNames() []string {
	names := make([]string, len(cc))
	for i, s := range cc {
		names[i] = s.Name()
	}
	return names
}

// FeatureNames возвращает имена всех признаков в детерминированном порядке:
// каналы в порядке конфигурации, внутри канала сначала временные статистики,
// затем частотные признаки для частотно-пригодных семейств. Два вызова на
// одной конфигурации дают идентичный порядок.
func (cc ChannelConfig) FeatureNames() []string {
	names := make([]string, 0, cc.FeatureCount())
	for _, s := range cc {
		base := s.Name()
		for _, kind := range timeDomainKinds {
			names = append(names, base+"_"+kind)
		}
		if s.Spectral {
			for _, kind := range spectralKinds {
				names = append(names, base+"_"+kind)
			}
		}
	}
	return names
}

// FeatureCount возвращает длину вектора признаков для конфигурации
func (cc ChannelConfig) FeatureCount() int {
	count := 0
	for _, s := range cc {
		count += len(timeDomainKinds)
		if s.Spectral {
			count += len(spectralKinds)
		}
	}
	return count
}

var (
	timeDomainKinds = []string{"mean", "std", "median", "max", "min"}
	spectralKinds   = []string{"total_power", "mean_power", "peak_freq"}
)
