// initdb deja la base en un estado conocido: borra las colecciones,
// crea los índices y siembra usuarios, el árbol de categorías y los
// productos de demostración. No inserta pedidos: 'pedidos' nace vacía.
package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tienda_virtual/internal/config"
	"tienda_virtual/internal/database"
	"tienda_virtual/internal/models"
	"tienda_virtual/internal/utils"
)

func main() {
	config.Load()
	database.ConnectDatabases()
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	log.Println("⚠️  Borrando colecciones existentes para una inicialización limpia...")
	for _, name := range []string{"usuarios", "productos", "categorias", "carritos", "pedidos"} {
		if err := database.Mongo.Collection(name).Drop(ctx); err != nil {
			log.Printf("⚠️  No se pudo borrar la colección %s: %v", name, err)
		}
	}

	if err := database.EnsureIndexes(ctx); err != nil {
		log.Fatal("❌ Error creando índices:", err)
	}
	log.Println("✅ Índices creados")

	seedUsers(ctx)
	categorias := seedCategories(ctx)
	seedProducts(ctx, categorias)

	log.Println("✅ Inicialización de la base completada")
}

func seedUsers(ctx context.Context) {
	log.Println("Inicializando 'usuarios'...")

	adminPass, err := utils.HashPassword("admin123")
	if err != nil {
		log.Fatal("❌ Error hasheando password:", err)
	}
	userPass, err := utils.HashPassword("user123")
	if err != nil {
		log.Fatal("❌ Error hasheando password:", err)
	}

	now := time.Now().UTC()
	users := []interface{}{
		models.User{
			ID:          primitive.NewObjectID(),
			Nombre:      "Admin User",
			Email:       "admin@tienda.com",
			Password:    adminPass,
			Role:        models.RoleAdmin,
			Telefono:    "1234567890",
			Direcciones: []models.Address{},
			Estado:      "activo",
			CreatedAt:   now,
		},
		models.User{
			ID:       primitive.NewObjectID(),
			Nombre:   "Juan Perez",
			Email:    "juan@example.com",
			Password: userPass,
			Role:     models.RoleCustomer,
			Telefono: "0987654321",
			Direcciones: []models.Address{
				{
					Alias:        "Casa",
					Calle:        "Calle Falsa 123",
					Ciudad:       "Springfield",
					Pais:         "Simyland",
					CodigoPostal: "12345",
				},
			},
			Estado:    "activo",
			CreatedAt: now,
		},
	}

	if _, err := database.Usuarios().InsertMany(ctx, users); err != nil {
		log.Fatal("❌ Error sembrando usuarios:", err)
	}
}

// seedCategories crea las raíces y subcategorías del árbol y devuelve
// los ids por slug para enlazar los productos.
func seedCategories(ctx context.Context) map[string]primitive.ObjectID {
	log.Println("Inicializando 'categorias'...")

	ids := make(map[string]primitive.ObjectID)

	insert := func(nombre, slug, descripcion string, parent *primitive.ObjectID) primitive.ObjectID {
		cat := models.Category{
			ID:          primitive.NewObjectID(),
			Nombre:      nombre,
			Slug:        slug,
			Descripcion: descripcion,
			ParentID:    parent,
			CreatedAt:   time.Now().UTC(),
		}
		if _, err := database.Categorias().InsertOne(ctx, cat); err != nil {
			log.Fatal("❌ Error sembrando categoría:", err)
		}
		ids[slug] = cat.ID
		return cat.ID
	}

	tech := insert("Tecnología", "tecnologia", "Gadgets y electrónicos", nil)
	insert("Ropa", "ropa", "Moda para todos", nil)
	coleccionables := insert("Coleccionables", "coleccionables", "Figuras de acción, colecciones y artículos especiales", nil)

	insert("Laptops", "laptops", "Portátiles de alto rendimiento", &tech)
	insert("Smartphones", "smartphones", "Teléfonos inteligentes", &tech)
	insert("Auriculares", "auriculares", "Audífonos inalámbricos y alámbricos", &tech)
	insert("Monitores", "monitores", "Pantallas para computadora", &tech)

	insert("Figuras de Acción", "figuras-de-accion", "Figuras de colección articuladas o estáticas", &coleccionables)
	insert("Cartas Coleccionables", "cartas", "TCG: Pokémon, Yu-Gi-Oh, MTG y más", &coleccionables)

	return ids
}

func seedProducts(ctx context.Context, categorias map[string]primitive.ObjectID) {
	log.Println("Inicializando 'productos'...")

	type seed struct {
		sku, nombre, descripcion, slug, catNombre string
		precio                                    int64
		stock                                     int
		atributos                                 map[string]string
		imagen                                    string
	}

	seeds := []seed{
		{"LAP-001", "Laptop Pro X", "La mejor laptop para desarrolladores", "laptops", "Laptops",
			150000, 50, map[string]string{"marca": "TechBrand", "color": "Gris Espacial", "ram": "16GB"},
			"https://cdn-dynmedia-1.microsoft.com/is/image/microsoftcorp/B03-Surface-Laptop-13-inch-1Ed-Rational-Violet-Rear-Right"},
		{"LAP-002", "Laptop Ultra Slim", "Liviana y potente, ideal para estudiantes", "laptops", "Laptops",
			89999, 70, map[string]string{"marca": "LiteTech", "color": "Plateado", "ram": "8GB"},
			"https://www.gatewayusa.com/cdn/shop/files/black16_f7c7d052-2222-427e-9dc6-174f2928718f.png?v=1721623728&width=1400"},
		{"SMA-001", "Smartphone Max 12", "Pantalla OLED 6.7\", 5G y triple cámara", "smartphones", "Smartphones",
			99900, 120, map[string]string{"marca": "PhoneTech", "color": "Negro", "almacenamiento": "128GB"},
			"https://images.fonearena.com/blog/wp-content/uploads/2022/07/Samsung-Galaxy-S22-Bora-Purple-1024x911.jpg"},
		{"SMA-002", "Smartphone Lite A5", "Económico, rápido y con buena cámara", "smartphones", "Smartphones",
			29900, 200, map[string]string{"marca": "NovaPhone", "color": "Azul", "almacenamiento": "64GB"},
			"https://http2.mlstatic.com/D_NQ_NP_772634-MCO70066305388_062023-O.webp"},
		{"AUR-001", "Auriculares ProSound", "Sonido Hi-Fi y cancelación activa de ruido", "auriculares", "Auriculares",
			19999, 150, map[string]string{"marca": "SoundMax", "tipo": "Inalámbricos"},
			"https://rukminim2.flixcart.com/image/480/640/xif0q/headphone/a/k/i/-original-imahyfkkhwpeb7ze.jpeg?q=90"},
		{"AUR-002", "Auriculares BassBoost", "Sonido profundo y batería de 30 horas", "auriculares", "Auriculares",
			14999, 180, map[string]string{"marca": "BeatFlex", "tipo": "Over-Ear"},
			"https://www.sony.com.co/image/5d02da5df552836db894cead8a68f5f3?fmt=pjpeg&wid=330&bgcolor=FFFFFF&bgc=FFFFFF"},
		{"MON-001", "Monitor UltraWide 34\"", "Pantalla curva para multitarea", "monitores", "Monitores",
			49999, 40, map[string]string{"marca": "ViewMax", "resolución": "3440x1440"},
			"https://www.lg.com/content/dam/channel/wcms/co/images/monitores/34wq500-b/gallery/ultrawide-34wq500-gallery-01-2010.jpg/_jcr_content/renditions/thum-1600x1062.jpeg"},
		{"MON-002", "Monitor Gamer 27\"", "165Hz, 1ms, ideal para gaming competitivo", "monitores", "Monitores",
			29999, 60, map[string]string{"marca": "GamerTech", "resolución": "1440p"},
			"https://es-store.msi.com/cdn/shop/files/monitor-gaming-msi-mag-27c6x.png?v=1733326643&width=640"},
		{"FIG-001", "Figura de Acción Daredevil", "Figura articulada de edición limitada", "figuras-de-accion", "Figuras de Acción",
			49999, 80, map[string]string{"franquicia": "Marvel", "altura": "25 cm"},
			"https://alteregocomics.com/cdn/shop/files/hot-toys-marvel-daredevil-sixth-scale-figure-gallery-67eabdb51471c.jpg?v=1743442148&width=1946"},
		{"FIG-002", "Punisher", "Figura articulada de edición limitada", "figuras-de-accion", "Figuras de Acción",
			49999, 50, map[string]string{"franquicia": "Marvel", "altura": "25 cm"},
			"https://m.media-amazon.com/images/I/81W0CWI3DNL.jpg"},
		{"CAR-001", "Sobre Pokémon TCG", "Sobre con 10 cartas al azar", "cartas", "Cartas Coleccionables",
			499, 300, map[string]string{"marca": "Pokémon", "tipo": "Expansión actual"},
			"https://xtremeplay.co/wp-content/uploads/2023/03/TOYCOLPOK1312_1.jpg"},
		{"CAR-002", "Exploding Kittens Party Pack", "Mazo para 10 jugadores", "cartas", "Cartas Coleccionables",
			1499, 120, map[string]string{"marca": "Exploding Kittens", "tipo": "Party Pack"},
			"https://media.falabella.com/falabellaCO/124472703_01/w=1500,h=1500,fit=pad"},
	}

	now := time.Now().UTC()
	products := make([]interface{}, 0, len(seeds))
	for _, s := range seeds {
		products = append(products, models.Product{
			ID:          primitive.NewObjectID(),
			SKU:         s.sku,
			Nombre:      s.nombre,
			Descripcion: s.descripcion,
			Categoria:   models.CategoryRef{ID: categorias[s.slug], Nombre: s.catNombre},
			Precio:      s.precio,
			Moneda:      "USD",
			Stock:       s.stock,
			Atributos:   s.atributos,
			Imagenes:    []string{s.imagen},
			Visible:     true,
			CreatedAt:   now,
		})
	}

	if _, err := database.Productos().InsertMany(ctx, products); err != nil {
		log.Fatal("❌ Error sembrando productos:", err)
	}
	log.Printf("✅ %d productos sembrados", len(products))
}
