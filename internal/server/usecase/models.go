package usecase

// CATALOG USECASE

// AddNewProductReq — запрос на добавление нового товара в каталог.
type AddNewProductReq struct {
	Name     string
	Category string
	Cost     int64 // в копейках
	Rating   int
	Images   []ProductImage
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// ProductInfo — DTO с информацией о товаре для внешнего использования.
type ProductInfo struct {
	ID       string
	Name     string
	Category string
	Cost     int64
	Rating   int
	ImageURL string
}

// CART USECASE

// UpsertCartReq — запрос на установку количества одного товара в корзине.
// Quantity == 0 означает удаление строки.
type UpsertCartReq struct {
	UserID    string
	ProductID string
	Quantity  int
}

// CartEntryInfo — строка корзины в том виде, в котором она отдаётся наружу.
type CartEntryInfo struct {
	ProductID string
	Quantity  int
}

// AUTH USECASE

type RegisterReq struct {
	Username string
	Password string
}

type LoginReq struct {
	Username string
	Password string
}

// LoginRes — результат успешного логина.
type LoginRes struct {
	Token    string
	Username string
	Balance  int64 // в копейках
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

// UploadImagesReq — запрос на загрузку изображений товара.
type UploadImagesReq struct {
	Name   string
	Images []ProductImage
}

// UploadImagesRes — результат загрузки изображений.
// ImagesKeys — ключи объектов в MinIO (нужны для компенсационной очистки),
// ImagesURLs — публичные адреса тех же объектов в том же порядке.
type UploadImagesRes struct {
	ImagesKeys []string
	ImagesURLs []string
}

// MAPPERS

func NewAddNewProductReq(name, category string, cost int64, rating int, images []ProductImage) *AddNewProductReq {
	return &AddNewProductReq{
		Name:     name,
		Category: category,
		Cost:     cost,
		Rating:   rating,
		Images:   images,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewProductInfo(id, name, category string, cost int64, rating int, imageURL string) ProductInfo {
	return ProductInfo{
		ID:       id,
		Name:     name,
		Category: category,
		Cost:     cost,
		Rating:   rating,
		ImageURL: imageURL,
	}
}

func NewUpsertCartReq(userID, productID string, quantity int) *UpsertCartReq {
	return &UpsertCartReq{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
}

func NewLoginRes(token, username string, balance int64) *LoginRes {
	return &LoginRes{
		Token:    token,
		Username: username,
		Balance:  balance,
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}

func NewUploadImagesReq(name string, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		Name:   name,
		Images: images,
	}
}

func NewUploadImagesRes(imagesKeys, imagesURLs []string) *UploadImagesRes {
	return &UploadImagesRes{
		ImagesKeys: imagesKeys,
		ImagesURLs: imagesURLs,
	}
}
