package converter

import "github.com/DRSN-tech/go-storefront/internal/server/usecase"

// ProductInfoRedisModel — представление товара в кэше каталога.
type ProductInfoRedisModel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Cost     int64  `json:"cost"`
	Rating   int    `json:"rating"`
	ImageURL string `json:"image_url"`
}

type ProductInfoConverter interface {
	ToRedisModel(info usecase.ProductInfo) ProductInfoRedisModel
	ToArrRedisModel(infos []usecase.ProductInfo) []ProductInfoRedisModel
	ToUseCase(model ProductInfoRedisModel) usecase.ProductInfo
	ToArrUseCase(models []ProductInfoRedisModel) []usecase.ProductInfo
}

type ProductInfoConverterImpl struct{}

func NewProductInfoConverterImpl() *ProductInfoConverterImpl {
	return &ProductInfoConverterImpl{}
}

func (c *ProductInfoConverterImpl) ToRedisModel(info usecase.ProductInfo) ProductInfoRedisModel {
	return ProductInfoRedisModel{
		ID:       info.ID,
		Name:     info.Name,
		Category: info.Category,
		Cost:     info.Cost,
		Rating:   info.Rating,
		ImageURL: info.ImageURL,
	}
}

func (c *ProductInfoConverterImpl) ToArrRedisModel(infos []usecase.ProductInfo) []ProductInfoRedisModel {
	if infos == nil {
		return nil
	}

	models := make([]ProductInfoRedisModel, len(infos))
	for i, info := range infos {
		models[i] = c.ToRedisModel(info)
	}

	return models
}

func (c *ProductInfoConverterImpl) ToUseCase(model ProductInfoRedisModel) usecase.ProductInfo {
	return usecase.ProductInfo{
		ID:       model.ID,
		Name:     model.Name,
		Category: model.Category,
		Cost:     model.Cost,
		Rating:   model.Rating,
		ImageURL: model.ImageURL,
	}
}

func (c *ProductInfoConverterImpl) ToArrUseCase(models []ProductInfoRedisModel) []usecase.ProductInfo {
	if models == nil {
		return nil
	}

	infos := make([]usecase.ProductInfo, len(models))
	for i, model := range models {
		infos[i] = c.ToUseCase(model)
	}

	return infos
}
