// Package seed loads the baseline dataset a fresh install needs: the
// default accounts, the brand and model catalog, part categories and a
// few stocked parts. Every insert is guarded by a lookup so running the
// seed against a populated database is a no-op.
package seed

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ibitrepair/workshop/internal/hash"
	"github.com/ibitrepair/workshop/internal/logging"
	"github.com/ibitrepair/workshop/internal/models"
)

type Seeder struct {
	DB     *gorm.DB
	Hasher *hash.Hasher
}

func (s *Seeder) Run(ctx context.Context) error {
	l := logging.FromContext(ctx).With("svc", "seed")

	if err := s.users(ctx); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	brandIDs, err := s.brands(ctx)
	if err != nil {
		return fmt.Errorf("seed brands: %w", err)
	}
	if err := s.minerModels(ctx, brandIDs); err != nil {
		return fmt.Errorf("seed miner models: %w", err)
	}
	catIDs, err := s.partCategories(ctx)
	if err != nil {
		return fmt.Errorf("seed part categories: %w", err)
	}
	if err := s.parts(ctx, catIDs); err != nil {
		return fmt.Errorf("seed parts: %w", err)
	}
	if err := s.warrantyProfiles(ctx); err != nil {
		return fmt.Errorf("seed warranty profiles: %w", err)
	}

	l.Info("seed_complete")
	return nil
}

func (s *Seeder) users(ctx context.Context) error {
	defaults := []struct {
		username, email, password, fullName, role string
	}{
		{"admin", "admin@ibit-repair.com", "admin123", "System Administrator", models.RoleAdmin},
		{"technician1", "tech1@ibit-repair.com", "tech123", "Workshop Technician", models.RoleTechnician},
	}

	for _, u := range defaults {
		var existing models.User
		err := s.DB.WithContext(ctx).Where("username = ?", u.username).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		hashed, err := s.Hasher.Hash(u.password)
		if err != nil {
			return err
		}
		user := models.User{
			Username:     u.username,
			Email:        u.email,
			PasswordHash: hashed,
			FullName:     u.fullName,
			Role:         u.role,
			IsActive:     true,
		}
		if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) brands(ctx context.Context) (map[string]uint, error) {
	names := []string{"Bitmain", "MicroBT", "Canaan", "Innosilicon", "Ebang"}

	ids := make(map[string]uint, len(names))
	for _, name := range names {
		var b models.Brand
		err := s.DB.WithContext(ctx).Where("name = ?", name).First(&b).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			b = models.Brand{Name: name}
			err = s.DB.WithContext(ctx).Create(&b).Error
		}
		if err != nil {
			return nil, err
		}
		ids[name] = b.ID
	}
	return ids, nil
}

type modelRow struct {
	brand     string
	name      string
	hashRate  float64
	powerWatt int
	algorithm string
	year      int
}

func (s *Seeder) minerModels(ctx context.Context, brandIDs map[string]uint) error {
	rows := []modelRow{
		{"Bitmain", "Antminer S9", 13.5, 1323, "SHA-256", 2017},
		{"Bitmain", "Antminer S17", 53, 2520, "SHA-256", 2019},
		{"Bitmain", "Antminer S17+", 73, 2920, "SHA-256", 2019},
		{"Bitmain", "Antminer S17 Pro", 56, 2520, "SHA-256", 2019},
		{"Bitmain", "Antminer S19", 95, 3250, "SHA-256", 2020},
		{"Bitmain", "Antminer S19 Pro", 110, 3250, "SHA-256", 2020},
		{"Bitmain", "Antminer S19j", 90, 3100, "SHA-256", 2020},
		{"Bitmain", "Antminer S19j Pro", 104, 3068, "SHA-256", 2021},
		{"Bitmain", "Antminer S19 XP", 140, 3010, "SHA-256", 2022},
		{"Bitmain", "Antminer S19 XP Hyd", 255, 5304, "SHA-256", 2022},
		{"Bitmain", "Antminer T19", 84, 3150, "SHA-256", 2020},
		{"Bitmain", "Antminer L7", 9500, 3425, "Scrypt", 2021},
		{"Bitmain", "Antminer D7", 1286, 3148, "X11", 2021},
		{"MicroBT", "Whatsminer M20S", 68, 3360, "SHA-256", 2019},
		{"MicroBT", "Whatsminer M30S", 86, 3344, "SHA-256", 2020},
		{"MicroBT", "Whatsminer M30S+", 100, 3400, "SHA-256", 2020},
		{"MicroBT", "Whatsminer M30S++", 112, 3472, "SHA-256", 2020},
		{"MicroBT", "Whatsminer M50", 114, 3306, "SHA-256", 2021},
		{"MicroBT", "Whatsminer M50S", 126, 3276, "SHA-256", 2021},
		{"MicroBT", "Whatsminer M50S+", 130, 3306, "SHA-256", 2022},
		{"MicroBT", "Whatsminer M60", 172, 3344, "SHA-256", 2023},
		{"MicroBT", "Whatsminer M60S", 176, 3404, "SHA-256", 2023},
		{"Canaan", "AvalonMiner 1066", 50, 3250, "SHA-256", 2019},
		{"Canaan", "AvalonMiner 1166", 68, 3196, "SHA-256", 2020},
		{"Canaan", "AvalonMiner 1246", 90, 3420, "SHA-256", 2021},
		{"Canaan", "AvalonMiner 1266", 100, 3500, "SHA-256", 2021},
		{"Canaan", "AvalonMiner 1366", 130, 3400, "SHA-256", 2022},
		{"Innosilicon", "A10 Pro", 500, 1350, "Ethash", 2020},
		{"Innosilicon", "A11 Pro", 1500, 2350, "Ethash", 2021},
	}

	for _, r := range rows {
		brandID, ok := brandIDs[r.brand]
		if !ok {
			return fmt.Errorf("unknown brand %q", r.brand)
		}
		var existing models.MinerModel
		err := s.DB.WithContext(ctx).
			Where("brand_id = ? AND model_name = ?", brandID, r.name).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		m := models.MinerModel{
			BrandID:     brandID,
			ModelName:   r.name,
			HashRate:    r.hashRate,
			PowerWatt:   r.powerWatt,
			Algorithm:   r.algorithm,
			ReleaseYear: r.year,
		}
		if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) partCategories(ctx context.Context) (map[string]uint, error) {
	rows := []models.PartCategory{
		{Name: "Hash Board", Description: "Main hashing circuit boards"},
		{Name: "Control Board", Description: "Controller boards"},
		{Name: "PSU", Description: "Power supply units"},
		{Name: "Fan", Description: "Cooling fans"},
		{Name: "Cable", Description: "Power and signal cables"},
		{Name: "Thermal Pad", Description: "Thermal interface pads"},
		{Name: "Heatsink", Description: "Heatsinks"},
		{Name: "Screws & Parts", Description: "Screws and small hardware"},
		{Name: "Others", Description: "Everything else"},
	}

	ids := make(map[string]uint, len(rows))
	for _, row := range rows {
		var c models.PartCategory
		err := s.DB.WithContext(ctx).Where("name = ?", row.Name).First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c = row
			err = s.DB.WithContext(ctx).Create(&c).Error
		}
		if err != nil {
			return nil, err
		}
		ids[c.Name] = c.ID
	}
	return ids, nil
}

func (s *Seeder) parts(ctx context.Context, catIDs map[string]uint) error {
	rows := []struct {
		category string
		part     models.Part
	}{
		{"Hash Board", models.Part{PartName: "S19 Pro Hash Board", PartCode: "HB-S19PRO-01", Price: 15000, StockQty: 10, MinStockLevel: 3, Supplier: "Bitmain Official"}},
		{"Hash Board", models.Part{PartName: "M30S++ Hash Board", PartCode: "HB-M30SPP-01", Price: 14000, StockQty: 8, MinStockLevel: 3, Supplier: "MicroBT Official"}},
		{"PSU", models.Part{PartName: "APW12 PSU 3000W", PartCode: "PSU-APW12-3000", Price: 8000, StockQty: 15, MinStockLevel: 5, Supplier: "Bitmain"}},
		{"Fan", models.Part{PartName: "Fan 12038 12V", PartCode: "FAN-12038-12V", Price: 500, StockQty: 50, MinStockLevel: 10, Supplier: "Generic"}},
	}

	for _, row := range rows {
		catID, ok := catIDs[row.category]
		if !ok {
			return fmt.Errorf("unknown part category %q", row.category)
		}
		var existing models.Part
		err := s.DB.WithContext(ctx).Where("part_code = ?", row.part.PartCode).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		p := row.part
		p.CategoryID = catID
		if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) warrantyProfiles(ctx context.Context) error {
	rows := []models.WarrantyProfile{
		{Name: "No Warranty", DurationDays: 0, CoversParts: false, CoversLabor: false, Terms: "No warranty coverage"},
		{Name: "7-Day Warranty", DurationDays: 7, CoversParts: true, CoversLabor: true, Terms: "Parts and labor covered for 7 days"},
		{Name: "30-Day Warranty", DurationDays: 30, CoversParts: true, CoversLabor: true, Terms: "Parts and labor covered for 30 days"},
		{Name: "90-Day Warranty", DurationDays: 90, CoversParts: true, CoversLabor: true, Terms: "Parts and labor covered for 90 days"},
		{Name: "30-Day Parts Only", DurationDays: 30, CoversParts: true, CoversLabor: false, Terms: "Parts covered for 30 days, labor excluded"},
	}

	for _, row := range rows {
		var existing models.WarrantyProfile
		err := s.DB.WithContext(ctx).Where("name = ?", row.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		w := row
		if err := s.DB.WithContext(ctx).Create(&w).Error; err != nil {
			return err
		}
	}
	return nil
}
