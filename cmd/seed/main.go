package main

import (
	"fmt"
	"log"

	"craftmosul/internal/config"
	"craftmosul/internal/database"
	"craftmosul/internal/domain"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds reference data and a default admin account. Safe to run more
// than once: everything is keyed on unique columns and uses FirstOrCreate.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Connect(cfg.Server.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	seedProfessions(db)
	seedNeighborhoods(db)
	seedAdmin(db)

	log.Println("Seed complete")
}

func seedProfessions(db *gorm.DB) {
	log.Println("Seeding professions...")
	professions := []domain.Profession{
		{Name: "Electrician", NameAr: "كهربائي"},
		{Name: "Plumber", NameAr: "سباك"},
		{Name: "Carpenter", NameAr: "نجار"},
		{Name: "Painter", NameAr: "صباغ"},
		{Name: "Blacksmith", NameAr: "حداد"},
		{Name: "Tiler", NameAr: "بلاط"},
		{Name: "Plasterer", NameAr: "مبيض"},
		{Name: "AC Technician", NameAr: "فني تبريد"},
		{Name: "Builder", NameAr: "بناء"},
		{Name: "Welder", NameAr: "لحام"},
	}
	for _, p := range professions {
		if err := db.Where("name = ?", p.Name).FirstOrCreate(&p).Error; err != nil {
			log.Fatal("seed profession:", err)
		}
	}
	log.Printf("Professions ready: %d", len(professions))
}

func seedNeighborhoods(db *gorm.DB) {
	log.Println("Seeding neighborhoods...")
	neighborhoods := []domain.Neighborhood{
		{Name: "Al-Zuhour", NameAr: "الزهور", Side: "left"},
		{Name: "Al-Muthanna", NameAr: "المثنى", Side: "left"},
		{Name: "Al-Qadisiyah", NameAr: "القادسية", Side: "left"},
		{Name: "Al-Hadbaa", NameAr: "الحدباء", Side: "left"},
		{Name: "Al-Sukkar", NameAr: "السكر", Side: "left"},
		{Name: "Al-Arabi", NameAr: "العربي", Side: "left"},
		{Name: "Bab al-Tob", NameAr: "باب الطوب", Side: "right"},
		{Name: "Al-Dawasa", NameAr: "الدواسة", Side: "right"},
		{Name: "Al-Zanjili", NameAr: "الزنجيلي", Side: "right"},
		{Name: "Wadi Hajar", NameAr: "وادي حجر", Side: "right"},
		{Name: "Al-Mansour", NameAr: "المنصور", Side: "right"},
		{Name: "17 Tammuz", NameAr: "17 تموز", Side: "right"},
	}
	for _, n := range neighborhoods {
		if err := db.Where("name = ?", n.Name).FirstOrCreate(&n).Error; err != nil {
			log.Fatal("seed neighborhood:", err)
		}
	}
	log.Printf("Neighborhoods ready: %d", len(neighborhoods))
}

func seedAdmin(db *gorm.DB) {
	log.Println("Seeding admin account...")

	email := "admin@craftmosul.iq"
	var existing domain.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Println("Admin already exists:", email)
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatal("seed admin:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash admin password:", err)
	}
	admin := domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Name:         "Administrator",
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("seed admin:", err)
	}
	fmt.Println("Admin created:", email, "/ admin123")
}
