package reference

import (
	"fmt"
	"strings"
)

// Mapping — ключи дропдаунов формы input-desain и их enum'ы в schema.prisma.
// Порядок значим: в нём же отдаются attributes и options.
var Mapping = []Attribute{
	// Spesifikasi Desain
	{Key: "sample", Enum: "Sample"},
	{Key: "jenis_produk", Enum: "JenisProduk"},
	{Key: "jenis_pola", Enum: "JenisPola"},
	{Key: "jenis_kain", Enum: "JenisKain"},

	// Detail Produk
	{Key: "aplikasi", Enum: "Aplikasi"},
	{Key: "jenis_bordir", Enum: "JenisBordir"},
	{Key: "jenis_sablon", Enum: "JenisSablon"},
	{Key: "hoodie", Enum: "Hoodie"},
	{Key: "potongan_bawah", Enum: "PotonganBawah"},
	{Key: "belahan_samping", Enum: "BelahanSamping"},
	{Key: "kerah", Enum: "Kerah"},
	{Key: "plaket", Enum: "Plaket"},
	{Key: "saku", Enum: "Saku"},
	{Key: "saku_bawah", Enum: "SakuBawah"},
	{Key: "saku_furing", Enum: "SakuFuring"},
	{Key: "ujung_lengan", Enum: "UjungLengan"},
	{Key: "kancing_depan", Enum: "KancingDepan"},

	// Detail Tambahan
	{Key: "tali_bawah", Enum: "TaliBawah"},
	{Key: "tali_lengan", Enum: "TaliLengan"},
	{Key: "ban_bawah", Enum: "BanBawah"},
	{Key: "skoder", Enum: "Skoder"},
	{Key: "varian_saku", Enum: "VariasiSaku"},
	{Key: "warna_list_reflektor", Enum: "WarnaListReflektor"},
	{Key: "ventilasi", Enum: "Ventilasi"},
	{Key: "tempat_pulpen", Enum: "TempatPulpen"},
	{Key: "lidah_kucing", Enum: "LidahKucing"},
	{Key: "tempat_lanyard", Enum: "TempatLanyard"},
	{Key: "gantungan_ht", Enum: "GantunganHT"},
}

// Validate проверяет, что ключи непустые и уникальны.
func Validate(mapping []Attribute) error {
	seen := make(map[string]struct{}, len(mapping))
	for i, a := range mapping {
		if strings.TrimSpace(a.Key) == "" || strings.TrimSpace(a.Enum) == "" {
			return fmt.Errorf("mapping[%d]: empty key or enum", i)
		}
		if _, dup := seen[a.Key]; dup {
			return fmt.Errorf("mapping[%d]: duplicate key %q", i, a.Key)
		}
		seen[a.Key] = struct{}{}
	}
	return nil
}

// FindAttribute ищет атрибут по ключу без учёта регистра.
func FindAttribute(mapping []Attribute, key string) (Attribute, bool) {
	kl := strings.ToLower(strings.TrimSpace(key))
	if kl == "" {
		return Attribute{}, false
	}
	for _, a := range mapping {
		if a.Key == key {
			return a, true
		}
	}
	for _, a := range mapping {
		if strings.ToLower(a.Key) == kl {
			return a, true
		}
	}
	return Attribute{}, false
}
